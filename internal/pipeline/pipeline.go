// Package pipeline orchestrates the analysis chain: container adapter →
// normalizer → detector bank → item scorer → document aggregator → report
// assembler. Data flows strictly forward; no stage reaches back upstream.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/veridict/veridict/internal/detect"
	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/metadata"
	"github.com/veridict/veridict/internal/probe"
	"github.com/veridict/veridict/internal/report"
	"github.com/veridict/veridict/internal/score"
)

// Pipeline runs analyses. Image and video probers, the detector bank, and
// the per-item bounds are fixed at construction; a Pipeline is safe for
// concurrent use.
type Pipeline struct {
	images      probe.Prober
	video       probe.Prober
	bank        *detect.Bank
	logger      *slog.Logger
	workers     int
	itemTimeout time.Duration
	now         func() time.Time
}

// Options configures pipeline construction. Zero values fall back to
// sensible defaults; Now exists for deterministic tests.
type Options struct {
	Images      probe.Prober
	Video       probe.Prober
	Bank        *detect.Bank
	Logger      *slog.Logger
	Workers     int
	ItemTimeout time.Duration
	Now         func() time.Time
}

// New creates a Pipeline from options.
func New(opts Options) *Pipeline {
	if opts.Images == nil {
		opts.Images = probe.NewNative()
	}
	if opts.Bank == nil {
		opts.Bank = detect.NewBank(detect.Config{})
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 4
	}
	if opts.ItemTimeout <= 0 {
		opts.ItemTimeout = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Pipeline{
		images:      opts.Images,
		video:       opts.Video,
		bank:        opts.Bank,
		logger:      opts.Logger.With("system", "pipeline"),
		workers:     opts.Workers,
		itemTimeout: opts.ItemTimeout,
		now:         opts.Now,
	}
}

// AnalyzeImage scores a standalone image file and assembles its report.
func (p *Pipeline) AnalyzeImage(ctx context.Context, path string, info report.FileInfo) (*report.Report, error) {
	tree, err := extract.Image(ctx, p.images, path)
	if err != nil {
		return nil, err
	}

	meta := metadata.NormalizeImage(tree)
	result := score.Score(p.bank.Run(meta))

	return report.AssembleItem(meta, result, info, p.now()), nil
}

// AnalyzeVideo scores a standalone video file and assembles its report.
func (p *Pipeline) AnalyzeVideo(ctx context.Context, path string, info report.FileInfo) (*report.Report, error) {
	tree, err := extract.Video(ctx, p.video, path)
	if err != nil {
		return nil, err
	}

	meta := metadata.NormalizeVideo(tree)
	result := score.Score(p.bank.Run(meta))

	return report.AssembleItem(meta, result, info, p.now()), nil
}

// AnalyzeDocument scores an OOXML package: its embedded images are scored
// exactly as standalone images would be, then aggregated. The package's
// own properties are reported, not scored. A package with zero extractable
// images is a valid zero result, not an error.
func (p *Pipeline) AnalyzeDocument(ctx context.Context, path string, info report.FileInfo) (*report.Report, error) {
	pkg, err := extract.OpenPackage(path)
	if err != nil {
		return nil, err
	}
	defer pkg.Close()

	props := metadata.NormalizeDocument(pkg.Kind, pkg.Properties())

	outcomes, err := p.scoreImages(ctx, pkg.Images())
	if err != nil {
		return nil, err
	}

	result := score.Aggregate(outcomes)
	return report.AssembleDocument(props, result, info, p.now()), nil
}
