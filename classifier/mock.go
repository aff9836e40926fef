package classifier

import (
	"context"

	"github.com/warden-social/warden/moderation"
)

// MockClassifier returns canned verdicts keyed by content ID, for tests and
// demo scenarios. Items without a canned verdict get a clean "none" verdict.
type MockClassifier struct {
	Verdicts map[string]moderation.Verdict
}

var _ Classifier = (*MockClassifier)(nil)

func NewMockClassifier() *MockClassifier {
	return &MockClassifier{
		Verdicts: make(map[string]moderation.Verdict),
	}
}

func (c *MockClassifier) Insert(contentID string, v moderation.Verdict) {
	c.Verdicts[contentID] = v
}

func (c *MockClassifier) Classify(ctx context.Context, item *moderation.ContentItem, user *moderation.UserProfile) (*moderation.Verdict, error) {
	if v, ok := c.Verdicts[item.ID]; ok {
		out := v
		return &out, nil
	}
	return &moderation.Verdict{
		Category:    moderation.CategoryNone,
		Severity:    moderation.SeverityLow,
		Confidence:  0.9,
		Recommended: moderation.ActionApprove,
		Explanation: "no policy violations detected",
	}, nil
}
