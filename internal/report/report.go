// Package report shapes analysis results into the canonical report record
// and renders it as JSON or PDF. Assembly and rendering are pure
// formatting: probability and confidence are never recomputed here.
package report

import (
	"strings"
	"time"

	"github.com/veridict/veridict/internal/metadata"
	"github.com/veridict/veridict/internal/score"
	"github.com/veridict/veridict/pkg/formatting"
)

// FileInfo describes the analyzed file as submitted.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Summary is the report's headline verdict.
type Summary struct {
	AIProbability int              `json:"ai_probability"`
	Confidence    score.Confidence `json:"confidence"`
	Source        string           `json:"source"`
	Location      *string          `json:"location,omitempty"`
	DateTime      *string          `json:"date_time,omitempty"`
}

// Indicators groups the explanatory detector output.
type Indicators struct {
	SoftwareDetected []string `json:"software_detected"`
	Anomalies        []string `json:"anomalies"`
	Evidence         []string `json:"evidence_from_metadata"`
}

// Report is the canonical record handed to renderers and persisted with
// each analysis.
type Report struct {
	FileType    string     `json:"file_type"`
	Summary     Summary    `json:"summary"`
	Metadata    any        `json:"metadata"`
	Indicators  Indicators `json:"ai_indicators"`
	FileInfo    FileInfo   `json:"file_info"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// DocumentMetadata is the metadata tree reported for office packages: the
// package's own properties plus the per-image breakdown.
type DocumentMetadata struct {
	Properties   *metadata.Document  `json:"properties"`
	ImagesCount  int                 `json:"images_count"`
	ImagesWithAI int                 `json:"images_with_ai_count"`
	PerImage     []score.ItemOutcome `json:"per_image"`
}

// AssembleItem builds the report for a standalone image or video item.
func AssembleItem(meta metadata.Meta, res score.ItemResult, info FileInfo, now time.Time) *Report {
	return &Report{
		FileType: string(meta.Family()),
		Summary: Summary{
			AIProbability: res.AIProbability,
			Confidence:    res.Confidence,
			Source:        source(res.SoftwareDetected),
			Location:      location(meta),
			DateTime:      dateTime(meta),
		},
		Metadata: meta,
		Indicators: Indicators{
			SoftwareDetected: res.SoftwareDetected,
			Anomalies:        res.Anomalies,
			Evidence:         res.Evidence,
		},
		FileInfo:    info,
		GeneratedAt: now,
	}
}

// AssembleDocument builds the report for an office package from its
// aggregated document result and package properties.
func AssembleDocument(props *metadata.Document, res score.DocumentResult, info FileInfo, now time.Time) *Report {
	return &Report{
		FileType: string(metadata.FamilyDocument),
		Summary: Summary{
			AIProbability: res.AIProbability,
			Confidence:    res.Confidence,
			Source:        source(res.SoftwareDetected),
			DateTime:      props.Created,
		},
		Metadata: DocumentMetadata{
			Properties:   props,
			ImagesCount:  res.ItemsCount,
			ImagesWithAI: res.ItemsWithAI,
			PerImage:     res.PerItem,
		},
		Indicators: Indicators{
			SoftwareDetected: res.SoftwareDetected,
			Anomalies:        res.Anomalies,
			Evidence:         res.Evidence,
		},
		FileInfo:    info,
		GeneratedAt: now,
	}
}

// SizeLabel returns the human-readable file size for rendering.
func (r *Report) SizeLabel() string {
	return formatting.FormatBytes(r.FileInfo.Size, 1)
}

func source(software []string) string {
	if len(software) == 0 {
		return "unknown"
	}
	return strings.Join(software, ", ")
}

func location(meta metadata.Meta) *string {
	img, ok := meta.(*metadata.Image)
	if !ok || img.GPSLatitude == nil || img.GPSLongitude == nil {
		return nil
	}
	loc := *img.GPSLatitude + ", " + *img.GPSLongitude
	return &loc
}

func dateTime(meta metadata.Meta) *string {
	switch v := meta.(type) {
	case *metadata.Image:
		if v.CreateDate != nil {
			return v.CreateDate
		}
		return v.ModifyDate
	case *metadata.Video:
		return v.CreationTime
	default:
		return nil
	}
}
