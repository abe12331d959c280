// Package probe invokes metadata probes against media files and returns
// their raw output as an untyped tree. Probes are the only source of raw
// metadata for the analysis pipeline; everything downstream consumes the
// tree through a normalizer.
package probe

import (
	"context"
	"errors"
	"fmt"
)

// Tree is the raw metadata produced by a probe: nested string-keyed maps of
// scalars, opaque to everything except the normalizer for its format family.
type Tree map[string]any

// Probe errors. ErrUnavailable means the probe binary itself cannot run and
// is fatal to the enclosing request; ErrTimeout and ErrProbeFailed describe
// a single invocation and degrade at the item boundary.
var (
	ErrUnavailable = errors.New("probe binary unavailable")
	ErrTimeout     = errors.New("probe timed out")
	ErrProbeFailed = errors.New("probe failed")
)

// Prober extracts a raw metadata tree from the file at path. The context
// bounds the invocation; implementations must return ErrTimeout when the
// deadline expires mid-probe.
type Prober interface {
	Probe(ctx context.Context, path string) (Tree, error)
}

// String returns the tree value at key as a string when present and
// non-empty, rendering numeric scalars with %v.
func (t Tree) String(key string) (string, bool) {
	v, ok := t[key]
	if !ok || v == nil {
		return "", false
	}

	switch val := v.(type) {
	case string:
		if val == "" {
			return "", false
		}
		return val, true
	case float64, int, int64:
		return fmt.Sprintf("%v", val), true
	default:
		return "", false
	}
}

// Float returns the tree value at key as a float64 when present.
func (t Tree) Float(key string) (float64, bool) {
	switch val := t[key].(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	default:
		return 0, false
	}
}

// Sub returns the nested tree at key when present.
func (t Tree) Sub(key string) (Tree, bool) {
	switch val := t[key].(type) {
	case Tree:
		return val, true
	case map[string]any:
		return Tree(val), true
	default:
		return nil, false
	}
}

// List returns the slice value at key when present.
func (t Tree) List(key string) ([]any, bool) {
	if val, ok := t[key].([]any); ok {
		return val, true
	}
	return nil, false
}
