package analyses

import (
	"net/url"
	"strconv"

	"github.com/veridict/veridict/pkg/query"
	"github.com/veridict/veridict/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("file_type", "FileType").
	Project("ai_probability", "AIProbability").
	Project("confidence", "Confidence").
	Project("storage_key", "StorageKey").
	Project("report_key", "ReportKey").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored. FileType, Confidence, and ContentType use exact
// matching; Filename uses case-insensitive contains matching. MinProbability
// filters to analyses at or above the given probability.
type Filters struct {
	Filename       *string `json:"filename,omitempty"`
	ContentType    *string `json:"content_type,omitempty"`
	FileType       *string `json:"file_type,omitempty"`
	Confidence     *string `json:"confidence,omitempty"`
	MinProbability *int    `json:"min_probability,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Filename", f.Filename).
		WhereEquals("ContentType", f.ContentType).
		WhereEquals("FileType", f.FileType).
		WhereEquals("Confidence", f.Confidence).
		WhereAtLeast("AIProbability", f.MinProbability)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	if ct := values.Get("content_type"); ct != "" {
		f.ContentType = &ct
	}

	if ft := values.Get("file_type"); ft != "" {
		f.FileType = &ft
	}

	if co := values.Get("confidence"); co != "" {
		f.Confidence = &co
	}

	if mp := values.Get("min_probability"); mp != "" {
		if v, err := strconv.Atoi(mp); err == nil {
			f.MinProbability = &v
		}
	}

	return f
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var a Analysis
	err := s.Scan(
		&a.ID,
		&a.Filename,
		&a.ContentType,
		&a.SizeBytes,
		&a.FileType,
		&a.AIProbability,
		&a.Confidence,
		&a.StorageKey,
		&a.ReportKey,
		&a.CreatedAt,
	)
	return a, err
}
