// Package fakedata generates fake users and content items.
// Intended for development, demos, and benchmarking the moderation pipeline.
package fakedata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/warden-social/warden/moderation"
	"github.com/warden-social/warden/setstore"

	"github.com/brianvoe/gofakeit/v6"
)

type Generator struct {
	// ViolationRate is the fraction of generated items (0..1) seeded with a
	// term from one of the classifier's sets.
	ViolationRate float64
	Sets          setstore.SetStore

	seq int
}

func NewGenerator(sets setstore.SetStore, violationRate float64) *Generator {
	return &Generator{
		ViolationRate: violationRate,
		Sets:          sets,
	}
}

func (g *Generator) NewProfile() moderation.UserProfile {
	return moderation.UserProfile{
		ID:                 fmt.Sprintf("USER-%05d", rand.Intn(100_000)),
		Username:           gofakeit.Username(),
		AccountAgeDays:     rand.Intn(1500),
		PreviousViolations: rand.Intn(4),
		ReputationScore:    rand.Intn(1000),
		Verified:           rand.Intn(10) == 0,
		FollowerCount:      rand.Intn(5000),
		Role:               "regular",
	}
}

func (g *Generator) NewContentItem(ctx context.Context, author *moderation.UserProfile) (*moderation.ContentItem, error) {
	g.seq++
	text := gofakeit.Sentence(10)

	if rand.Float64() < g.ViolationRate && g.Sets != nil {
		cat := moderation.Categories[1+rand.Intn(len(moderation.Categories)-1)]
		terms, err := g.Sets.ListSet(ctx, string(cat)+"-terms")
		if err != nil {
			return nil, err
		}
		if len(terms) > 0 {
			text = fmt.Sprintf("%s %s", text, terms[rand.Intn(len(terms))])
		}
	}

	return &moderation.ContentItem{
		ID:          fmt.Sprintf("FAKE-%06d", g.seq),
		AuthorID:    author.ID,
		ContentType: "text_post",
		Text:        text,
		CreatedAt:   time.Now(),
		Platform:    "Social Media Platform",
		Context:     "Generated test content",
	}, nil
}
