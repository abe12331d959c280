package detect

import "github.com/veridict/veridict/internal/metadata"

// Rule inspects canonical metadata and emits zero or more signals. Rules
// are stateless and must not depend on other rules having run.
type Rule func(m metadata.Meta) []Signal

// Bank holds the detector rules in a fixed declaration order. The order
// only determines presentation (anomaly and evidence sequencing in
// results); it never changes which signals are emitted.
type Bank struct {
	rules []Rule
}

// NewBank builds the detector bank from injected configuration.
func NewBank(cfg Config) *Bank {
	cfg.Finalize()

	matcher := newToolMatcher(cfg.AITools)
	encoders := newToolMatcher(cfg.KnownEncoders)

	return &Bank{
		rules: []Rule{
			softwareSignatureRule(matcher, cfg.SoftwareMatchWeight),
			unknownEncoderRule(encoders, cfg.UnknownEncoderWeight),
			frameRateRule(cfg.FrameRateWeight, cfg.UnusualRateWeight),
			highBitRateRule(cfg.HighBitRateWeight),
			missingCameraRule(cfg.NoCameraWeight),
			provenanceEvidenceRule(),
		},
	}
}

// Run executes every rule against the metadata and returns the combined
// signal slice in rule declaration order.
func (b *Bank) Run(m metadata.Meta) []Signal {
	var signals []Signal
	for _, rule := range b.rules {
		signals = append(signals, rule(m)...)
	}
	return signals
}
