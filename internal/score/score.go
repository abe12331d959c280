// Package score folds detector signals into item-level results and
// aggregates item results into document-level verdicts. It owns the
// probability-to-confidence threshold function shared with the report
// renderer's severity mapping.
package score

import "github.com/veridict/veridict/internal/detect"

// Confidence is the three-level derived label. It is never set directly:
// always a function of probability (items) or positive-item count
// (documents).
type Confidence string

// Confidence levels.
const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ConfidenceFor derives the confidence label from an AI probability.
// The renderer's visual severity mapping uses these same thresholds; the
// two must stay numerically identical.
func ConfidenceFor(probability int) Confidence {
	switch {
	case probability < 30:
		return ConfidenceLow
	case probability < 70:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

// ItemResult is the verdict for one scorable item. Immutable once returned.
type ItemResult struct {
	AIProbability    int        `json:"ai_probability"`
	Confidence       Confidence `json:"confidence"`
	SoftwareDetected []string   `json:"software_detected"`
	Anomalies        []string   `json:"anomalies"`
	Evidence         []string   `json:"evidence_from_metadata"`
}

// ZeroItem returns the degraded result substituted for an item that could
// not be processed: zero probability, low confidence, empty collections.
func ZeroItem() ItemResult {
	return ItemResult{
		AIProbability:    0,
		Confidence:       ConfidenceLow,
		SoftwareDetected: []string{},
		Anomalies:        []string{},
		Evidence:         []string{},
	}
}

// Score folds all signals for one item. Probability is the delta sum
// capped at 100; software names form a set in first-seen order; anomalies
// and evidence concatenate in bank declaration order.
func Score(signals []detect.Signal) ItemResult {
	result := ZeroItem()

	seen := make(map[string]bool)
	total := 0

	for _, s := range signals {
		total += s.Delta

		if s.Software != "" && !seen[s.Software] {
			seen[s.Software] = true
			result.SoftwareDetected = append(result.SoftwareDetected, s.Software)
		}
		if s.Anomaly != "" {
			result.Anomalies = append(result.Anomalies, s.Anomaly)
		}
		if s.Evidence != "" {
			result.Evidence = append(result.Evidence, s.Evidence)
		}
	}

	if total > 100 {
		total = 100
	}

	result.AIProbability = total
	result.Confidence = ConfidenceFor(total)
	return result
}
