package pipeline_test

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/probe"
	"github.com/veridict/veridict/internal/report"
	"github.com/veridict/veridict/internal/score"
)

// probeFunc adapts a function to the Prober interface. The probed file's
// content selects the returned tree, so tests can address individual
// embedded images without knowing their temp paths.
type probeFunc func(ctx context.Context, path string) (probe.Tree, error)

func (f probeFunc) Probe(ctx context.Context, path string) (probe.Tree, error) {
	return f(ctx, path)
}

func contentKeyed(trees map[string]probe.Tree, failOn string) probeFunc {
	return func(ctx context.Context, path string) (probe.Tree, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		key := string(data)
		if key == failOn && failOn != "" {
			return nil, probe.ErrProbeFailed
		}
		if tree, ok := trees[key]; ok {
			return tree, nil
		}
		return probe.Tree{}, nil
	}
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newPipeline(images probe.Prober, video probe.Prober) *pipeline.Pipeline {
	return pipeline.New(pipeline.Options{
		Images: images,
		Video:  video,
		Now:    fixedNow,
	})
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeDocx(t *testing.T, images map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, _ := zw.Create("word/document.xml")
	w.Write([]byte("<w/>"))

	// Sorted creation keeps enumeration order stable across runs.
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create("word/media/" + name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(images[name]))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeImage(t *testing.T) {
	images := probeFunc(func(ctx context.Context, path string) (probe.Tree, error) {
		return probe.Tree{"Software": "Midjourney v6"}, nil
	})

	p := newPipeline(images, nil)
	info := report.FileInfo{Name: "art.png", Size: 2048}

	rep, err := p.AnalyzeImage(context.Background(), "unused", info)
	if err != nil {
		t.Fatalf("AnalyzeImage: %v", err)
	}

	if rep.FileType != "image" {
		t.Errorf("FileType = %q", rep.FileType)
	}
	// software signature 80 plus missing camera metadata 10
	if rep.Summary.AIProbability != 90 {
		t.Errorf("AIProbability = %d, want 90", rep.Summary.AIProbability)
	}
	if rep.Summary.Confidence != score.ConfidenceHigh {
		t.Errorf("Confidence = %q, want high", rep.Summary.Confidence)
	}
	if rep.Summary.Source != "midjourney" {
		t.Errorf("Source = %q, want midjourney", rep.Summary.Source)
	}
	if !rep.GeneratedAt.Equal(fixedNow()) {
		t.Errorf("GeneratedAt = %v", rep.GeneratedAt)
	}
}

func TestAnalyzeImageProbeError(t *testing.T) {
	images := probeFunc(func(ctx context.Context, path string) (probe.Tree, error) {
		return nil, probe.ErrUnavailable
	})

	p := newPipeline(images, nil)
	_, err := p.AnalyzeImage(context.Background(), "unused", report.FileInfo{})
	if !errors.Is(err, probe.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}

func TestAnalyzeVideo(t *testing.T) {
	video := probeFunc(func(ctx context.Context, path string) (probe.Tree, error) {
		return probe.Tree{
			"format": map[string]any{
				"tags": map[string]any{"encoder": "SynthCam"},
			},
			"streams": []any{
				map[string]any{
					"codec_type":   "video",
					"r_frame_rate": "45/1",
				},
			},
		}, nil
	})

	p := newPipeline(nil, video)
	rep, err := p.AnalyzeVideo(context.Background(), "unused", report.FileInfo{Name: "clip.mp4"})
	if err != nil {
		t.Fatalf("AnalyzeVideo: %v", err)
	}

	if rep.FileType != "video" {
		t.Errorf("FileType = %q", rep.FileType)
	}
	// unknown encoder 15 plus unusual frame rate 10
	if rep.Summary.AIProbability != 25 {
		t.Errorf("AIProbability = %d, want 25", rep.Summary.AIProbability)
	}

	foundRate := false
	for _, a := range rep.Indicators.Anomalies {
		if a == "unusual frame rate: 45.0 fps" {
			foundRate = true
		}
	}
	if !foundRate {
		t.Errorf("Anomalies = %v, missing unusual frame rate", rep.Indicators.Anomalies)
	}
}

func TestAnalyzeVideoIdempotent(t *testing.T) {
	video := probeFunc(func(ctx context.Context, path string) (probe.Tree, error) {
		return probe.Tree{
			"streams": []any{
				map[string]any{"codec_type": "video", "r_frame_rate": "45/1"},
			},
		}, nil
	})

	p := newPipeline(nil, video)
	first, err := p.AnalyzeVideo(context.Background(), "unused", report.FileInfo{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.AnalyzeVideo(context.Background(), "unused", report.FileInfo{})
	if err != nil {
		t.Fatal(err)
	}

	if first.Summary.AIProbability != second.Summary.AIProbability {
		t.Errorf(
			"probability changed between runs: %d vs %d",
			first.Summary.AIProbability, second.Summary.AIProbability,
		)
	}
}

func TestAnalyzeDocument(t *testing.T) {
	docPath := writeDocx(t, map[string]string{
		"image1.png": "clean",
		"image2.png": "flagged",
		"image3.png": "clean",
	})

	images := contentKeyed(map[string]probe.Tree{
		"flagged": {"Software": "DALL-E 3"},
	}, "")

	p := newPipeline(images, nil)
	rep, err := p.AnalyzeDocument(context.Background(), docPath, report.FileInfo{Name: "doc.docx"})
	if err != nil {
		t.Fatalf("AnalyzeDocument: %v", err)
	}

	if rep.Summary.AIProbability != 90 {
		t.Errorf("AIProbability = %d, want max over items 90", rep.Summary.AIProbability)
	}
	if rep.Summary.Confidence != score.ConfidenceHigh {
		t.Errorf("Confidence = %q, want high", rep.Summary.Confidence)
	}
	if !strings.Contains(rep.Summary.Source, "dall-e") {
		t.Errorf("Source = %q, want dall-e", rep.Summary.Source)
	}
}

func TestAnalyzeDocumentOrderPreserved(t *testing.T) {
	docPath := writeDocx(t, map[string]string{
		"image1.png": "a",
		"image2.png": "b",
		"image3.png": "c",
		"image4.png": "d",
	})

	p := pipeline.New(pipeline.Options{
		Images:  contentKeyed(nil, ""),
		Workers: 2,
		Now:     fixedNow,
	})

	rep, err := p.AnalyzeDocument(context.Background(), docPath, report.FileInfo{})
	if err != nil {
		t.Fatal(err)
	}

	data := perImage(t, rep)
	want := []string{
		"word/media/image1.png",
		"word/media/image2.png",
		"word/media/image3.png",
		"word/media/image4.png",
	}
	if len(data) != len(want) {
		t.Fatalf("per-image count = %d, want %d", len(data), len(want))
	}
	for i, o := range data {
		if o.Name != want[i] {
			t.Errorf("per-image[%d] = %q, want %q", i, o.Name, want[i])
		}
	}
}

func TestAnalyzeDocumentItemFailureDegrades(t *testing.T) {
	docPath := writeDocx(t, map[string]string{
		"image1.png": "broken",
		"image2.png": "flagged",
	})

	images := contentKeyed(map[string]probe.Tree{
		"flagged": {"Software": "Midjourney"},
	}, "broken")

	p := newPipeline(images, nil)
	rep, err := p.AnalyzeDocument(context.Background(), docPath, report.FileInfo{})
	if err != nil {
		t.Fatalf("AnalyzeDocument: %v", err)
	}

	data := perImage(t, rep)
	if len(data) != 2 {
		t.Fatalf("per-image count = %d, want 2", len(data))
	}
	if data[0].Result.AIProbability != 0 {
		t.Errorf("failed item probability = %d, want 0", data[0].Result.AIProbability)
	}
	if data[1].Result.AIProbability != 90 {
		t.Errorf("healthy item probability = %d, want 90", data[1].Result.AIProbability)
	}
	if rep.Summary.AIProbability != 90 {
		t.Errorf("document probability = %d, want 90", rep.Summary.AIProbability)
	}
}

func TestAnalyzeDocumentNoImages(t *testing.T) {
	docPath := writeDocx(t, nil)

	p := newPipeline(contentKeyed(nil, ""), nil)
	rep, err := p.AnalyzeDocument(context.Background(), docPath, report.FileInfo{})
	if err != nil {
		t.Fatalf("AnalyzeDocument: %v", err)
	}

	if rep.Summary.AIProbability != 0 {
		t.Errorf("AIProbability = %d, want 0", rep.Summary.AIProbability)
	}
	if rep.Summary.Confidence != score.ConfidenceLow {
		t.Errorf("Confidence = %q, want low", rep.Summary.Confidence)
	}
	if len(perImage(t, rep)) != 0 {
		t.Error("per-image breakdown must be empty")
	}
}

func TestAnalyzeDocumentNotAPackage(t *testing.T) {
	path := writeFile(t, "bogus.docx", "definitely not a zip")

	p := newPipeline(contentKeyed(nil, ""), nil)
	_, err := p.AnalyzeDocument(context.Background(), path, report.FileInfo{})
	if err == nil {
		t.Fatal("expected error for invalid package")
	}
}

// perImage extracts the per-image outcomes from a document report.
func perImage(t *testing.T, rep *report.Report) []score.ItemOutcome {
	t.Helper()

	meta, ok := rep.Metadata.(report.DocumentMetadata)
	if !ok {
		t.Fatalf("metadata is %T, want report.DocumentMetadata", rep.Metadata)
	}
	return meta.PerImage
}
