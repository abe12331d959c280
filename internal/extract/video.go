package extract

import (
	"context"

	"github.com/veridict/veridict/internal/probe"
)

// Video extracts the raw container tree from the video at path using the
// given prober. Stream order in the tree is ffprobe's probe order; the
// normalizer's first-wins selection depends on it being preserved.
func Video(ctx context.Context, prober probe.Prober, path string) (probe.Tree, error) {
	return prober.Probe(ctx, path)
}
