package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// FFProbe probes video containers by invoking the ffprobe binary with JSON
// format and stream sections enabled.
type FFProbe struct {
	bin     string
	timeout time.Duration
}

// NewFFProbe creates an ffprobe prober. An empty bin defaults to "ffprobe"
// resolved through PATH.
func NewFFProbe(bin string, timeout time.Duration) *FFProbe {
	if bin == "" {
		bin = "ffprobe"
	}
	return &FFProbe{bin: bin, timeout: timeout}
}

// Probe runs ffprobe against path. The returned tree carries ffprobe's
// "format" object and "streams" array verbatim, preserving stream order.
func (f *FFProbe) Probe(ctx context.Context, path string) (Tree, error) {
	out, err := runProbe(
		ctx, f.timeout, f.bin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return nil, err
	}

	var tree Tree
	if err := json.Unmarshal(out, &tree); err != nil {
		return nil, fmt.Errorf("%w: decode ffprobe output: %w", ErrProbeFailed, err)
	}
	return tree, nil
}
