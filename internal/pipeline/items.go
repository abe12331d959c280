package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/metadata"
	"github.com/veridict/veridict/internal/score"
)

// ItemError reports a failure scoring one embedded item. It is absorbed at
// the item boundary and never reaches the aggregator.
type ItemError struct {
	Name string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %s: %v", e.Name, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// scoreImages runs the extraction-through-scoring chain for every embedded
// image with bounded concurrency, then joins results in enumeration order
// regardless of completion order. An item failure degrades that item to a
// zero result; sibling in-flight items are never cancelled, so workers
// always return nil to the group.
func (p *Pipeline) scoreImages(ctx context.Context, images []extract.EmbeddedImage) ([]score.ItemOutcome, error) {
	if len(images) == 0 {
		return nil, nil
	}

	outcomes := make([]score.ItemOutcome, len(images))

	g := new(errgroup.Group)
	g.SetLimit(min(p.workers, len(images)))

	for i, img := range images {
		g.Go(func() error {
			result, err := p.scoreImage(ctx, img)
			if err != nil {
				p.logger.Warn(
					"embedded image degraded to zero result",
					"item", img.Name,
					"error", &ItemError{Name: img.Name, Err: err},
				)
				result = score.ZeroItem()
			}
			outcomes[i] = score.ItemOutcome{Name: img.Name, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// scoreImage processes one embedded image: the entry is spilled to a scoped
// temp file for the prober, removed when the item completes.
func (p *Pipeline) scoreImage(ctx context.Context, img extract.EmbeddedImage) (score.ItemResult, error) {
	itemCtx, cancel := context.WithTimeout(ctx, p.itemTimeout)
	defer cancel()

	path, cleanup, err := spillEntry(img)
	if err != nil {
		return score.ItemResult{}, err
	}
	defer cleanup()

	tree, err := extract.Image(itemCtx, p.images, path)
	if err != nil {
		return score.ItemResult{}, err
	}

	meta := metadata.NormalizeImage(tree)
	return score.Score(p.bank.Run(meta)), nil
}

// spillEntry writes a zip entry to a temp file and returns its path with a
// cleanup function. The extension is preserved for probers that sniff by
// suffix.
func spillEntry(img extract.EmbeddedImage) (string, func(), error) {
	rc, err := img.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open entry: %w", err)
	}
	defer rc.Close()

	tmp, err := os.CreateTemp("", "veridict-item-*"+filepath.Ext(img.Name))
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("spill entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, err
	}

	return tmp.Name(), func() { os.Remove(tmp.Name()) }, nil
}
