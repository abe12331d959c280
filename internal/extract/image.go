// Package extract adapts container formats into raw metadata trees: image
// and video files through their probes, OOXML office packages through the
// zip archive reader. Each adapter shares one output contract, the
// probe.Tree, which the matching normalizer turns into canonical metadata.
package extract

import (
	"context"

	"github.com/veridict/veridict/internal/probe"
)

// Image extracts the raw tag tree from the image at path using the given
// prober. A tag-free image yields an empty tree; only probe-level failures
// (binary unavailable, timeout) propagate.
func Image(ctx context.Context, prober probe.Prober, path string) (probe.Tree, error) {
	return prober.Probe(ctx, path)
}
