package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDecision(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text     string
		expected Decision
	}{
		{"approve", DecisionApprove},
		{"Approve", DecisionApprove},
		{"  approve  ", DecisionApprove},
		{"warn", DecisionWarn},
		{"restrict", DecisionRestrict},
		{"remove", DecisionRemove},
		{"content has been approved with a warning to the user", DecisionWarn},
		{"content has been approved", DecisionApprove},
		{"content has been restricted (limited visibility)", DecisionRestrict},
		{"content has been removed", DecisionRemove},

		// ambiguous or unrecognized input always defers
		{"", DecisionFlagForReview},
		{"   ", DecisionFlagForReview},
		{"maybe", DecisionFlagForReview},
		{"xyz", DecisionFlagForReview},
		{"yes", DecisionFlagForReview},
		{"ok fine", DecisionFlagForReview},
	}

	for _, fix := range fixtures {
		assert.Equal(fix.expected, ParseDecision(fix.text), "input: %q", fix.text)
	}
}

func TestVerdictRequiresReview(t *testing.T) {
	assert := assert.New(t)

	clean := Verdict{Category: CategoryNone, Severity: SeverityLow}
	assert.False(clean.RequiresReview())

	for _, cat := range Categories[1:] {
		v := Verdict{Category: cat, Severity: SeverityMedium}
		assert.True(v.RequiresReview(), "category: %s", cat)
	}
}
