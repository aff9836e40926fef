package moderation

import "strings"

// decisionTable maps operator answer text to decisions. Entries are checked
// in order and matched as substrings of the normalized answer, so longer,
// more specific phrases must come before their prefixes ("approved with a
// warning" before "approve").
var decisionTable = []struct {
	match    string
	decision Decision
}{
	{"approved with a warning", DecisionWarn},
	{"warn", DecisionWarn},
	{"restrict", DecisionRestrict},
	{"remove", DecisionRemove},
	{"approve", DecisionApprove},
}

// ParseDecision maps free-text operator input to a moderation decision.
//
// Anything unrecognized (empty, malformed, hedged) maps to flag-for-review:
// the conservative default on ambiguous input is to defer to another
// reviewer, never to approve or remove.
func ParseDecision(text string) Decision {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return DecisionFlagForReview
	}
	for _, row := range decisionTable {
		if strings.Contains(norm, row.match) {
			return row.decision
		}
	}
	return DecisionFlagForReview
}
