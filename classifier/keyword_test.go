package classifier

import (
	"context"
	"testing"
	"time"

	"github.com/warden-social/warden/moderation"
	"github.com/warden-social/warden/setstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeText(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		text string
		out  []string
	}{
		{"Hello, World!", []string{"hello", "world"}},
		{"IDIOT!!! loser...", []string{"idiot", "loser"}},
		{"Idiót lösér", []string{"idiot", "loser"}},
		{"", []string{}},
		{"   ", []string{}},
	}
	for _, fix := range fixtures {
		assert.Equal(fix.out, tokenizeText(fix.text), "text: %q", fix.text)
	}
}

func testSets() *setstore.MemSetStore {
	ss := setstore.NewMemSetStore()
	ss.AddToSet(TermSetName(moderation.CategoryHarassment), []string{"idiot", "loser", "pathetic"})
	ss.AddToSet(TermSetName(moderation.CategorySpam), []string{"giveaway", "crypto", "airdrop"})
	return ss
}

func TestKeywordClassifierClean(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	c := NewKeywordClassifier(testSets())
	item := &moderation.ContentItem{
		ID:        "POST-001",
		AuthorID:  "USER-12345",
		Text:      "I love this platform! The community here is so supportive and kind.",
		CreatedAt: time.Now(),
	}
	user := &moderation.UserProfile{ID: "USER-12345", AccountAgeDays: 732}

	v, err := c.Classify(ctx, item, user)
	require.NoError(t, err)
	assert.Equal(moderation.CategoryNone, v.Category)
	assert.Equal(moderation.ActionApprove, v.Recommended)
	assert.False(v.RequiresReview())
}

func TestKeywordClassifierViolation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	c := NewKeywordClassifier(testSets())
	item := &moderation.ContentItem{
		ID:   "POST-002",
		Text: "anyone who supports them is an idiot who deserves what's coming",
	}
	cleanUser := &moderation.UserProfile{ID: "u1", AccountAgeDays: 365, PreviousViolations: 0}

	v, err := c.Classify(ctx, item, cleanUser)
	require.NoError(t, err)
	assert.Equal(moderation.CategoryHarassment, v.Category)
	assert.Equal(moderation.SeverityMedium, v.Severity)
	assert.Equal(moderation.ActionFlagForReview, v.Recommended)
	assert.True(v.RequiresReview())
	assert.Greater(v.Confidence, 0.5)

	// same text from a repeat offender on a fresh account escalates
	riskyUser := &moderation.UserProfile{ID: "u2", AccountAgeDays: 15, PreviousViolations: 2}
	v, err = c.Classify(ctx, item, riskyUser)
	require.NoError(t, err)
	assert.Equal(moderation.CategoryHarassment, v.Category)
	assert.Equal(moderation.SeverityCritical, v.Severity)
	assert.Equal(moderation.ActionRemove, v.Recommended)
}

func TestKeywordClassifierFolding(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	c := NewKeywordClassifier(testSets())
	item := &moderation.ContentItem{ID: "POST-004", Text: "frëë crypto gïveäway!!!"}

	v, err := c.Classify(ctx, item, nil)
	require.NoError(t, err)
	assert.Equal(moderation.CategorySpam, v.Category)
}
