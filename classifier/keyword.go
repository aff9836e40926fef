package classifier

import (
	"context"
	"fmt"

	"github.com/warden-social/warden/moderation"
	"github.com/warden-social/warden/setstore"
)

// TermSetName returns the setstore set name holding match terms for a
// violation category, eg "harassment-terms".
func TermSetName(cat moderation.Category) string {
	return string(cat) + "-terms"
}

// KeywordClassifier flags content whose tokens match per-category term sets,
// escalating severity based on the author's track record. It is deliberately
// coarse: its job is to route borderline content to a human, not to be the
// final word.
type KeywordClassifier struct {
	Sets setstore.SetStore
}

var _ Classifier = (*KeywordClassifier)(nil)

func NewKeywordClassifier(sets setstore.SetStore) *KeywordClassifier {
	return &KeywordClassifier{Sets: sets}
}

func (c *KeywordClassifier) Classify(ctx context.Context, item *moderation.ContentItem, user *moderation.UserProfile) (*moderation.Verdict, error) {
	tokens := tokenizeText(item.Text)

	var topCat moderation.Category
	topHits := 0
	for _, cat := range moderation.Categories {
		if cat == moderation.CategoryNone {
			continue
		}
		hits := 0
		for _, tok := range tokens {
			ok, err := c.Sets.InSet(ctx, TermSetName(cat), tok)
			if err != nil {
				return nil, fmt.Errorf("checking term set: %w", err)
			}
			if ok {
				hits++
			}
		}
		if hits > topHits {
			topCat = cat
			topHits = hits
		}
	}

	if topHits == 0 {
		return &moderation.Verdict{
			Category:    moderation.CategoryNone,
			Severity:    moderation.SeverityLow,
			Confidence:  0.9,
			Recommended: moderation.ActionApprove,
			Explanation: "no policy violations detected",
		}, nil
	}

	sev := baseSeverity(topCat)
	if topHits >= 3 {
		sev = bumpSeverity(sev)
	}
	if user != nil {
		// repeat offenders and throwaway accounts get escalated
		if user.PreviousViolations > 0 {
			sev = bumpSeverity(sev)
		}
		if user.AccountAgeDays < 30 && !user.Verified {
			sev = bumpSeverity(sev)
		}
	}

	conf := 0.5 + 0.1*float64(topHits)
	if conf > 0.95 {
		conf = 0.95
	}

	action := moderation.ActionFlagForReview
	if sev == moderation.SeverityCritical {
		action = moderation.ActionRemove
	}

	return &moderation.Verdict{
		Category:    topCat,
		Severity:    sev,
		Confidence:  conf,
		Recommended: action,
		Explanation: fmt.Sprintf("matched %d term(s) in the %s list; human review required before enforcement", topHits, topCat),
	}, nil
}

func baseSeverity(cat moderation.Category) moderation.Severity {
	switch cat {
	case moderation.CategoryViolence, moderation.CategorySelfHarm, moderation.CategoryHateSpeech:
		return moderation.SeverityHigh
	case moderation.CategoryHarassment, moderation.CategoryNudity:
		return moderation.SeverityMedium
	default:
		return moderation.SeverityLow
	}
}

func bumpSeverity(s moderation.Severity) moderation.Severity {
	switch s {
	case moderation.SeverityLow:
		return moderation.SeverityMedium
	case moderation.SeverityMedium:
		return moderation.SeverityHigh
	default:
		return moderation.SeverityCritical
	}
}
