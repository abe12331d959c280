package score

// ItemOutcome pairs an item identifier (the archive member name for
// embedded images) with its scored result.
type ItemOutcome struct {
	Name   string     `json:"name"`
	Result ItemResult `json:"result"`
}

// DocumentResult is the document-level verdict folded over the embedded
// item outcomes. ItemsCount always equals len(PerItem).
type DocumentResult struct {
	AIProbability    int           `json:"ai_probability"`
	Confidence       Confidence    `json:"confidence"`
	SoftwareDetected []string      `json:"software_detected"`
	Anomalies        []string      `json:"anomalies"`
	Evidence         []string      `json:"evidence_from_metadata"`
	ItemsCount       int           `json:"images_count"`
	ItemsWithAI      int           `json:"images_with_ai_count"`
	PerItem          []ItemOutcome `json:"per_item"`
}

// Aggregate folds item outcomes into a document-level result. The document
// probability is the maximum over items, never an average: one strongly
// flagged image must not be diluted by many clean ones. Document confidence
// is high whenever any item scored above zero, else low; this is
// intentionally independent of the item-level threshold function.
func Aggregate(outcomes []ItemOutcome) DocumentResult {
	result := DocumentResult{
		Confidence:       ConfidenceLow,
		SoftwareDetected: []string{},
		Anomalies:        []string{},
		Evidence:         []string{},
		ItemsCount:       len(outcomes),
		PerItem:          outcomes,
	}
	if result.PerItem == nil {
		result.PerItem = []ItemOutcome{}
	}

	seen := make(map[string]bool)
	for _, o := range outcomes {
		item := o.Result

		if item.AIProbability > result.AIProbability {
			result.AIProbability = item.AIProbability
		}
		if item.AIProbability > 0 {
			result.ItemsWithAI++
		}

		for _, sw := range item.SoftwareDetected {
			if !seen[sw] {
				seen[sw] = true
				result.SoftwareDetected = append(result.SoftwareDetected, sw)
			}
		}
		result.Anomalies = append(result.Anomalies, item.Anomalies...)
		result.Evidence = append(result.Evidence, item.Evidence...)
	}

	if result.ItemsWithAI > 0 {
		result.Confidence = ConfidenceHigh
	}

	return result
}
