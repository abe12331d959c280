// Package detect implements the heuristic detector bank. Each rule
// independently inspects canonical metadata and emits weighted signals;
// rules never see each other's output, so execution order cannot affect
// the signal set.
package detect

// Signal is one weighted, named observation emitted by a single rule.
// Delta is the rule's probability contribution in [0,100]; Software names
// a detected generation tool; Anomaly describes a suspicious property;
// Evidence surfaces provenance-bearing metadata verbatim with no scoring
// weight. Empty strings mean absent.
type Signal struct {
	Indicator string
	Delta     int
	Software  string
	Anomaly   string
	Evidence  string
}
