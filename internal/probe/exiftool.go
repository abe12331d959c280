package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// ExifTool probes image files by invoking the exiftool binary with JSON
// output and numeric values.
type ExifTool struct {
	bin     string
	timeout time.Duration
}

// NewExifTool creates an exiftool prober. An empty bin defaults to
// "exiftool" resolved through PATH.
func NewExifTool(bin string, timeout time.Duration) *ExifTool {
	if bin == "" {
		bin = "exiftool"
	}
	return &ExifTool{bin: bin, timeout: timeout}
}

// Probe runs exiftool against path. A file exiftool cannot read yields an
// empty tree rather than an error; only a missing binary or an expired
// deadline fail the invocation.
func (e *ExifTool) Probe(ctx context.Context, path string) (Tree, error) {
	out, err := runProbe(ctx, e.timeout, e.bin, "-json", "-n", path)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// exiftool exits non-zero for unreadable or tag-free files;
			// that is "no tags available", not a probe failure.
			return Tree{}, nil
		}
		return nil, err
	}

	// exiftool emits a single-element array of tag objects per input file.
	var records []Tree
	if err := json.Unmarshal(out, &records); err != nil || len(records) == 0 {
		return Tree{}, nil
	}
	return records[0], nil
}

// runProbe executes a probe binary under a timeout, classifying failures
// into the probe error taxonomy.
func runProbe(ctx context.Context, timeout time.Duration, bin string, args ...string) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w: %s", ErrTimeout, bin)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, bin)
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrProbeFailed, bin, err)
}
