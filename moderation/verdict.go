package moderation

// Verdict is the output of a content classifier for a single item. Produced
// once per item; immutable.
type Verdict struct {
	Category    Category `json:"violation_category"`
	Severity    Severity `json:"severity_level"`
	Confidence  float64  `json:"confidence"`
	Recommended Action   `json:"recommended_action"`
	Explanation string   `json:"explanation"`
}

// RequiresReview indicates whether human confirmation is needed before any
// enforcement action is applied. Anything other than a clean "none" verdict
// goes through the confirmation gate.
func (v *Verdict) RequiresReview() bool {
	return v.Category != CategoryNone
}
