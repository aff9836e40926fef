package engine

import (
	"log/slog"
	"time"

	"github.com/warden-social/warden/classifier"
	"github.com/warden-social/warden/countstore"
	"github.com/warden-social/warden/directory"
	"github.com/warden-social/warden/gate"
	"github.com/warden-social/warden/ledger"
	"github.com/warden-social/warden/moderation"
)

// EngineTestFixture builds an engine wired to in-memory stores, a mock
// directory with three authors, and a mock classifier with canned verdicts
// for POST-002 (harassment/medium) and POST-003 (nudity/high). Intentionally
// exported, for use in other packages.
func EngineTestFixture(reviewTimeout time.Duration) *Engine {
	dir := directory.NewMockDirectory()
	dir.Insert(moderation.UserProfile{
		ID:              "USER-12345",
		Username:        "GoodUser123",
		AccountAgeDays:  732,
		ReputationScore: 950,
		Verified:        true,
		FollowerCount:   87,
		Role:            "regular",
	})
	dir.Insert(moderation.UserProfile{
		ID:                 "USER-67890",
		Username:           "PoliticalRanter42",
		AccountAgeDays:     45,
		PreviousViolations: 2,
		ReputationScore:    120,
		FollowerCount:      23,
		Role:               "regular",
	})
	dir.Insert(moderation.UserProfile{
		ID:                 "USER-54321",
		Username:           "ArtisticSoul99",
		AccountAgeDays:     365,
		PreviousViolations: 1,
		ReputationScore:    480,
		FollowerCount:      213,
		Role:               "creator",
	})

	mock := classifier.NewMockClassifier()
	mock.Insert("POST-002", moderation.Verdict{
		Category:    moderation.CategoryHarassment,
		Severity:    moderation.SeverityMedium,
		Confidence:  0.85,
		Recommended: moderation.ActionFlagForReview,
		Explanation: "potentially harassing language and insults directed at a group of people",
	})
	mock.Insert("POST-003", moderation.Verdict{
		Category:    moderation.CategoryNudity,
		Severity:    moderation.SeverityHigh,
		Confidence:  0.75,
		Recommended: moderation.ActionFlagForReview,
		Explanation: "image URL suggests potentially inappropriate content; context matters for artistic nudity",
	})

	logger := slog.Default()
	return &Engine{
		Logger:     logger,
		Directory:  dir,
		Classifier: mock,
		Gate:       gate.NewGate(logger, nil, reviewTimeout),
		Ledger:     ledger.NewMemLedger(),
		Counters:   countstore.NewMemCountStore(),
		Reviewer:   "mod-johnson",
	}
}

// TestContentItems returns the three standard fixture posts used across
// tests and the demo.
func TestContentItems() []moderation.ContentItem {
	now := time.Now()
	return []moderation.ContentItem{
		{
			ID:          "POST-001",
			AuthorID:    "USER-12345",
			ContentType: "text_post",
			Text:        "I love this platform! The community here is so supportive and kind.",
			CreatedAt:   now,
			Platform:    "Social Media Platform",
			Context:     "Public post on user's profile",
		},
		{
			ID:          "POST-002",
			AuthorID:    "USER-67890",
			ContentType: "text_post",
			Text:        "This politician is completely corrupt and anyone who supports them is an idiot who deserves what's coming to them.",
			CreatedAt:   now,
			Platform:    "Social Media Platform",
			Context:     "Comment on a news article",
		},
		{
			ID:          "POST-003",
			AuthorID:    "USER-54321",
			ContentType: "image_post",
			Text:        "Check out my new artwork!",
			MediaURLs:   []string{"https://example.com/potentially-questionable-image.jpg"},
			CreatedAt:   now,
			Platform:    "Social Media Platform",
			Context:     "Public post in art community",
		},
	}
}
