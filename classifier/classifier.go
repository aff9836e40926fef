// Package classifier scores content items for policy violations.
//
// The Classifier interface is the boundary the moderation engine consumes;
// implementations here are a keyword/heuristic classifier driven by term
// sets, and a mock with canned verdicts for tests and demos. A real
// model-backed classifier would slot in behind the same interface.
package classifier

import (
	"context"

	"github.com/warden-social/warden/moderation"
)

type Classifier interface {
	// Classify is side-effect-free and must not block on external input; if
	// an implementation can block, the caller wraps it in its own context
	// handling.
	Classify(ctx context.Context, item *moderation.ContentItem, user *moderation.UserProfile) (*moderation.Verdict, error)
}
