package detect

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/veridict/veridict/internal/metadata"
)

// highBitRateThreshold is the bit rate above which a missing encoder
// string becomes suspicious.
const highBitRateThreshold = 5_000_000

// broadcastRates are the canonical broadcast and production frame rates.
var broadcastRates = []float64{24, 25, 30, 50, 60}

// toolMatcher performs case-insensitive substring matching against a
// keyword list.
type toolMatcher struct {
	keywords []string
}

func newToolMatcher(keywords []string) *toolMatcher {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &toolMatcher{keywords: lowered}
}

// match returns the first keyword contained in value, case-insensitively.
func (t *toolMatcher) match(value string) (string, bool) {
	lower := strings.ToLower(value)
	for _, k := range t.keywords {
		if strings.Contains(lower, k) {
			return k, true
		}
	}
	return "", false
}

// softwareSignatureRule matches software, creator-tool, encoder, and
// application fields against the known generative-AI tool list. Every
// matched field emits its own signal; deduplication is the scorer's job.
func softwareSignatureRule(tools *toolMatcher, weight int) Rule {
	return func(m metadata.Meta) []Signal {
		var fields []string
		switch v := m.(type) {
		case *metadata.Image:
			fields = collect(v.Software, v.CreatorTool, v.Creator)
		case *metadata.Video:
			fields = collect(v.Encoder)
		case *metadata.Document:
			fields = collect(v.Application, v.Creator, v.LastModifiedBy)
		}

		var signals []Signal
		for _, field := range fields {
			tool, ok := tools.match(field)
			if !ok {
				continue
			}
			signals = append(signals, Signal{
				Indicator: "software_signature",
				Delta:     weight,
				Software:  tool,
				Evidence:  fmt.Sprintf("software field contains %q: %s", tool, field),
			})
		}
		return signals
	}
}

// unknownEncoderRule flags video encoder strings that match none of the
// known-legitimate-editor allowlist. Absence of a known editor is weak
// evidence, not proof.
func unknownEncoderRule(known *toolMatcher, weight int) Rule {
	return func(m metadata.Meta) []Signal {
		v, ok := m.(*metadata.Video)
		if !ok || v.Encoder == nil {
			return nil
		}
		if _, ok := known.match(*v.Encoder); ok {
			return nil
		}
		return []Signal{{
			Indicator: "unknown_encoder",
			Delta:     weight,
			Anomaly:   fmt.Sprintf("suspicious encoder: %s", *v.Encoder),
		}}
	}
}

// frameRateRule checks the two ffprobe frame-rate fields for consistency
// and the nominal rate for plausibility. Malformed rational strings are
// swallowed, never propagated.
func frameRateRule(inconsistencyWeight, unusualWeight int) Rule {
	return func(m metadata.Meta) []Signal {
		v, ok := m.(*metadata.Video)
		if !ok {
			return nil
		}

		var signals []Signal

		r, rOK := parseRational(v.RFrameRate)
		avg, avgOK := parseRational(v.AvgFrameRate)

		if rOK && avgOK && math.Abs(r-avg) > 0.1 {
			signals = append(signals, Signal{
				Indicator: "frame_rate_mismatch",
				Delta:     inconsistencyWeight,
				Anomaly: fmt.Sprintf(
					"frame rate mismatch: r_frame_rate %.2f vs avg_frame_rate %.2f",
					r, avg,
				),
			})
		}

		if rOK && r > 20 && r < 70 && !isBroadcastRate(r) {
			signals = append(signals, Signal{
				Indicator: "unusual_frame_rate",
				Delta:     unusualWeight,
				Anomaly:   fmt.Sprintf("unusual frame rate: %.1f fps", r),
			})
		}

		return signals
	}
}

// highBitRateRule flags a high bit rate with no encoder string present.
func highBitRateRule(weight int) Rule {
	return func(m metadata.Meta) []Signal {
		v, ok := m.(*metadata.Video)
		if !ok || v.BitRate == nil || v.Encoder != nil {
			return nil
		}
		if *v.BitRate <= highBitRateThreshold {
			return nil
		}
		return []Signal{{
			Indicator: "high_bit_rate",
			Delta:     weight,
			Anomaly:   "high quality without encoder info",
		}}
	}
}

// missingCameraRule flags images declaring editing software but carrying
// no camera identification at all.
func missingCameraRule(weight int) Rule {
	return func(m metadata.Meta) []Signal {
		v, ok := m.(*metadata.Image)
		if !ok {
			return nil
		}
		if v.Software == nil && v.CreatorTool == nil {
			return nil
		}
		if v.CameraMake != nil || v.CameraModel != nil {
			return nil
		}
		return []Signal{{
			Indicator: "no_camera_metadata",
			Delta:     weight,
			Anomaly:   "software metadata present without any camera information",
		}}
	}
}

// provenanceEvidenceRule surfaces explicit provenance records verbatim.
// Evidence is explanatory, not scoring, so the delta is always zero.
func provenanceEvidenceRule() Rule {
	return func(m metadata.Meta) []Signal {
		v, ok := m.(*metadata.Image)
		if !ok {
			return nil
		}

		var signals []Signal
		if v.DigitalSourceType != nil {
			signals = append(signals, Signal{
				Indicator: "digital_source_type",
				Evidence:  fmt.Sprintf("digital source type: %s", *v.DigitalSourceType),
			})
		}
		if v.Credit != nil {
			signals = append(signals, Signal{
				Indicator: "credit",
				Evidence:  fmt.Sprintf("credit: %s", *v.Credit),
			})
		}
		return signals
	}
}

// parseRational decodes an ffprobe "num/den" rational string. A bare
// number is accepted as-is; "0/0" and malformed input report no value.
func parseRational(s *string) (float64, bool) {
	if s == nil {
		return 0, false
	}

	num, den, found := strings.Cut(*s, "/")
	if !found {
		f, err := strconv.ParseFloat(*s, 64)
		return f, err == nil
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func isBroadcastRate(r float64) bool {
	for _, rate := range broadcastRates {
		if r == rate {
			return true
		}
	}
	return false
}

// collect gathers non-nil string fields.
func collect(fields ...*string) []string {
	var out []string
	for _, f := range fields {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}
