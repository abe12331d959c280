package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// pdfFont, pdfText, and pdfPage mirror pdfcpu's create-from-JSON page
// description schema.
type pdfFont struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type pdfText struct {
	Value  string  `json:"value"`
	Anchor string  `json:"anchor"`
	Dx     float64 `json:"dx"`
	Dy     float64 `json:"dy"`
	Font   pdfFont `json:"font"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

type pdfDescription struct {
	Paper string             `json:"paper"`
	Pages map[string]pdfPage `json:"pages"`
}

// WritePDF renders the report as a single-page PDF via pdfcpu's JSON page
// description. Layout only; all verdict values come from the assembled
// report unchanged.
func WritePDF(w io.Writer, r *Report) error {
	desc := buildDescription(r)

	data, err := json.Marshal(desc)
	if err != nil {
		return fmt.Errorf("marshal pdf description: %w", err)
	}

	if err := api.Create(nil, bytes.NewReader(data), w, nil); err != nil {
		return fmt.Errorf("create pdf: %w", err)
	}
	return nil
}

func buildDescription(r *Report) pdfDescription {
	heading := pdfFont{Name: "Helvetica-Bold", Size: 18}
	label := pdfFont{Name: "Helvetica-Bold", Size: 11}
	value := pdfFont{Name: "Helvetica", Size: 11}

	lines := []pdfText{
		{Value: "AI Provenance Analysis Report", Anchor: "tl", Dx: 50, Dy: 40, Font: heading},
		{Value: fmt.Sprintf("File: %s (%s)", r.FileInfo.Name, r.SizeLabel()), Anchor: "tl", Dx: 50, Dy: 80, Font: value},
		{Value: fmt.Sprintf("Type: %s", r.FileType), Anchor: "tl", Dx: 50, Dy: 100, Font: value},
		{Value: fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04:05 MST")), Anchor: "tl", Dx: 50, Dy: 120, Font: value},
		{Value: fmt.Sprintf("AI probability: %d%%", r.Summary.AIProbability), Anchor: "tl", Dx: 50, Dy: 160, Font: label},
		{Value: fmt.Sprintf("Confidence: %s", r.Summary.Confidence), Anchor: "tl", Dx: 50, Dy: 180, Font: label},
		{Value: fmt.Sprintf("Source: %s", r.Summary.Source), Anchor: "tl", Dx: 50, Dy: 200, Font: value},
	}

	y := 240.0
	lines = appendSection(lines, "Software detected", r.Indicators.SoftwareDetected, label, value, &y)
	lines = appendSection(lines, "Anomalies", r.Indicators.Anomalies, label, value, &y)
	lines = appendSection(lines, "Evidence from metadata", r.Indicators.Evidence, label, value, &y)

	return pdfDescription{
		Paper: "A4",
		Pages: map[string]pdfPage{
			"1": {Content: pdfContent{Text: lines}},
		},
	}
}

func appendSection(lines []pdfText, title string, entries []string, label, value pdfFont, y *float64) []pdfText {
	if len(entries) == 0 {
		return lines
	}

	lines = append(lines, pdfText{Value: title, Anchor: "tl", Dx: 50, Dy: *y, Font: label})
	*y += 20

	for _, entry := range entries {
		lines = append(lines, pdfText{Value: "- " + entry, Anchor: "tl", Dx: 60, Dy: *y, Font: value})
		*y += 16
	}
	*y += 10

	return lines
}
