// Package analyze implements the submission surface: an uploaded file is
// typed by content sniffing, run through the analysis pipeline, and the
// resulting verdict is recorded in the analysis history.
package analyze

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/veridict/veridict/internal/analyses"
	"github.com/veridict/veridict/internal/metadata"
	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/report"
)

// Command carries one submitted file through analysis.
type Command struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Result pairs the assembled report with its rendered JSON and the
// recorded history entry.
type Result struct {
	Report   *report.Report
	JSON     []byte
	Analysis *analyses.Analysis
}

// System defines the public contract for file analysis.
type System interface {
	Handler(maxUploadSize int64) *Handler
	Analyze(ctx context.Context, cmd Command) (*Result, error)
}

type service struct {
	pipeline *pipeline.Pipeline
	history  analyses.System
	logger   *slog.Logger
}

// New creates an analyze system over the given pipeline and history.
func New(p *pipeline.Pipeline, history analyses.System, logger *slog.Logger) System {
	return &service{
		pipeline: p,
		history:  history,
		logger:   logger.With("system", "analyze"),
	}
}

func (s *service) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

func (s *service) Analyze(ctx context.Context, cmd Command) (*Result, error) {
	family, contentType, err := sniff(cmd.Data, cmd.ContentType)
	if err != nil {
		return nil, err
	}

	path, cleanup, err := spill(cmd.Data, cmd.Filename)
	if err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	defer cleanup()

	info := report.FileInfo{
		Name: cmd.Filename,
		Size: int64(len(cmd.Data)),
	}

	var rep *report.Report
	switch family {
	case metadata.FamilyImage:
		rep, err = s.pipeline.AnalyzeImage(ctx, path, info)
	case metadata.FamilyVideo:
		rep, err = s.pipeline.AnalyzeVideo(ctx, path, info)
	case metadata.FamilyDocument:
		rep, err = s.pipeline.AnalyzeDocument(ctx, path, info)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, rep); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	entry, err := s.history.Create(ctx, analyses.CreateCommand{
		Data:          cmd.Data,
		Report:        buf.Bytes(),
		Filename:      cmd.Filename,
		ContentType:   contentType,
		FileType:      rep.FileType,
		AIProbability: rep.Summary.AIProbability,
		Confidence:    string(rep.Summary.Confidence),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(
		"analysis complete",
		"filename", cmd.Filename,
		"file_type", rep.FileType,
		"ai_probability", rep.Summary.AIProbability,
		"confidence", rep.Summary.Confidence,
	)

	return &Result{Report: rep, JSON: buf.Bytes(), Analysis: entry}, nil
}

// sniff types the upload from its leading bytes. The declared content type
// is kept when it agrees with the sniffed family; otherwise the sniffed
// type wins.
func sniff(data []byte, declared string) (metadata.Family, string, error) {
	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", "", ErrUnsupportedType
	}

	var family metadata.Family
	switch {
	case strings.HasPrefix(kind.MIME.Value, "image/"):
		family = metadata.FamilyImage
	case strings.HasPrefix(kind.MIME.Value, "video/"):
		family = metadata.FamilyVideo
	case kind.Extension == "docx", kind.Extension == "pptx", kind.Extension == "zip":
		// OOXML packages sniff as their own types or as plain zip;
		// package classification settles which.
		family = metadata.FamilyDocument
	default:
		return "", "", ErrUnsupportedType
	}

	contentType := declared
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = kind.MIME.Value
	}

	return family, contentType, nil
}

// spill writes the upload to a scoped temp file, preserving the original
// extension for the probes. The cleanup func removes the file.
func spill(data []byte, filename string) (string, func(), error) {
	f, err := os.CreateTemp("", "veridict-*"+filepath.Ext(filename))
	if err != nil {
		return "", nil, err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}

	return f.Name(), func() { os.Remove(f.Name()) }, nil
}
