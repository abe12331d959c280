// Package analyses implements the analysis-history domain: every completed
// verdict is recorded with its original file and generated report retained
// in blob storage.
package analyses

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is one recorded verdict.
type Analysis struct {
	ID            uuid.UUID `json:"id"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"content_type"`
	SizeBytes     int64     `json:"size_bytes"`
	FileType      string    `json:"file_type"`
	AIProbability int       `json:"ai_probability"`
	Confidence    string    `json:"confidence"`
	StorageKey    string    `json:"storage_key"`
	ReportKey     string    `json:"report_key"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateCommand carries everything needed to record a completed analysis.
// Data holds the submitted file bytes; Report holds the rendered JSON
// report bytes.
type CreateCommand struct {
	Data          []byte
	Report        []byte
	Filename      string
	ContentType   string
	FileType      string
	AIProbability int
	Confidence    string
}
