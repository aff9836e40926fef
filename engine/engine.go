// Package engine drives content items through classification and, when a
// verdict requires it, through the human-confirmation gate, writing exactly
// one moderation record per item.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/warden-social/warden/classifier"
	"github.com/warden-social/warden/countstore"
	"github.com/warden-social/warden/directory"
	"github.com/warden-social/warden/gate"
	"github.com/warden-social/warden/ledger"
	"github.com/warden-social/warden/moderation"
)

// runtime for classifying content, gating enforcement on human confirmation,
// and recording outcomes.
//
// TODO: careful when initializing: several fields should not be null or zero, even though they are pointer type.
type Engine struct {
	Logger     *slog.Logger
	Directory  directory.Directory
	Classifier classifier.Classifier
	Gate       *gate.Gate
	Ledger     ledger.Ledger
	Counters   countstore.CountStore
	// Reviewer is the operator identity confirmation prompts are addressed to.
	Reviewer string
}

// ProcessContent runs one content item to a terminal moderation record.
//
// Clean verdicts are auto-approved with no gate interaction. Anything else
// opens a confirmation slot and blocks until the reviewer answers; timeouts,
// cancellation, and unrecognized answers all resolve to flag-for-review,
// never to a default approval. Unrelated items are not serialized behind this
// one; each gets its own slot.
func (eng *Engine) ProcessContent(ctx context.Context, item *moderation.ContentItem) (rec *moderation.ModerationRecord, err error) {
	// similar to an HTTP server, we want to recover any panics from classifier
	// execution; a panic must surface as an error, never as a silent nil record
	defer func() {
		if r := recover(); r != nil {
			eng.Logger.Error("moderation processing exception", "err", r, "contentID", item.ID)
			contentErrorCount.WithLabelValues("panic").Inc()
			rec = nil
			err = fmt.Errorf("processing content %s: panic: %v", item.ID, r)
		}
	}()

	start := time.Now()
	logger := eng.Logger.With("contentID", item.ID, "authorID", item.AuthorID)

	user, err := eng.Directory.Lookup(ctx, item.AuthorID)
	if err != nil {
		if !errors.Is(err, directory.ErrProfileNotFound) {
			contentErrorCount.WithLabelValues("lookup").Inc()
			return nil, fmt.Errorf("resolving author profile: %w", err)
		}
		// unknown authors are screened with an empty track record
		user = &moderation.UserProfile{ID: item.AuthorID, Username: "unknown"}
	}

	verdict, err := eng.Classifier.Classify(ctx, item, user)
	if err != nil {
		contentErrorCount.WithLabelValues("classify").Inc()
		return nil, fmt.Errorf("classifying content: %w", err)
	}
	logger = logger.With("category", verdict.Category, "severity", verdict.Severity)
	logger.Debug("content classified", "confidence", verdict.Confidence, "recommended", verdict.Recommended)

	var out moderation.ModerationRecord
	if !verdict.RequiresReview() {
		out = moderation.ModerationRecord{
			ContentID:  item.ID,
			Decision:   moderation.DecisionApprove,
			Category:   verdict.Category,
			Severity:   verdict.Severity,
			Notes:      "auto-approved, no violations detected",
			ResolvedBy: moderation.ResolverAutomated,
			ResolvedAt: time.Now(),
		}
	} else {
		out, err = eng.confirmWithOperator(ctx, item, user, verdict)
		if err != nil {
			return nil, err
		}
	}

	if err := eng.Ledger.Record(ctx, out); err != nil {
		// a duplicate here means two tasks processed the same item; that is
		// an orchestration bug, not something to paper over
		contentErrorCount.WithLabelValues("record").Inc()
		return nil, fmt.Errorf("recording moderation decision: %w", err)
	}
	eng.persistCounters(ctx, item, verdict, &out)

	logger.Info("canonical-event-line", "decision", out.Decision, "resolvedBy", out.ResolvedBy, "duration", time.Since(start))
	contentProcessedCount.WithLabelValues(string(verdict.Category)).Inc()
	decisionCount.WithLabelValues(string(out.Decision)).Inc()
	processDuration.Observe(time.Since(start).Seconds())
	return &out, nil
}

// confirmWithOperator opens a gate slot for the item and blocks until the
// reviewer's answer (or timeout/cancellation) produces a terminal decision.
func (eng *Engine) confirmWithOperator(ctx context.Context, item *moderation.ContentItem, user *moderation.UserProfile, verdict *moderation.Verdict) (moderation.ModerationRecord, error) {
	req := gate.Request{
		ContentID: item.ID,
		Operator:  eng.Reviewer,
		Prompt:    renderPrompt(item, user, verdict),
	}

	h, err := eng.Gate.Open(ctx, req)
	if err != nil {
		if errors.Is(err, gate.ErrDuplicateRequest) {
			// another task owns this item's slot and will write its record
			return moderation.ModerationRecord{}, err
		}
		// the slot never opened (eg prompt publish failed); defer rather
		// than lose the item
		eng.Logger.Warn("confirmation request failed, deferring to review queue", "contentID", item.ID, "err", err)
		return moderation.ModerationRecord{
			ContentID:  item.ID,
			Decision:   moderation.DecisionFlagForReview,
			Category:   verdict.Category,
			Severity:   verdict.Severity,
			Notes:      "confirmation request could not be published",
			ResolvedBy: moderation.ResolverAutomated,
			ResolvedAt: time.Now(),
		}, nil
	}
	defer eng.Gate.Close(h)

	gateStart := time.Now()
	resp, err := h.Await(ctx)
	gateWaitDuration.Observe(time.Since(gateStart).Seconds())
	if err != nil {
		if errors.Is(err, gate.ErrTimeout) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			eng.Logger.Warn("confirmation expired without an answer, deferring", "contentID", item.ID, "err", err)
			return moderation.ModerationRecord{
				ContentID:  item.ID,
				Decision:   moderation.DecisionFlagForReview,
				Category:   verdict.Category,
				Severity:   verdict.Severity,
				Notes:      "review deadline expired with no operator response",
				ResolvedBy: moderation.ResolverTimeout,
				ResolvedAt: time.Now(),
			}, nil
		}
		return moderation.ModerationRecord{}, fmt.Errorf("awaiting confirmation: %w", err)
	}

	return moderation.ModerationRecord{
		ContentID:  item.ID,
		Decision:   moderation.ParseDecision(resp.Text),
		Category:   verdict.Category,
		Severity:   verdict.Severity,
		Notes:      "reviewed by human moderator",
		ResolvedBy: resp.Operator,
		ResolvedAt: resp.ReceivedAt,
	}, nil
}

func (eng *Engine) persistCounters(ctx context.Context, item *moderation.ContentItem, verdict *moderation.Verdict, rec *moderation.ModerationRecord) {
	if eng.Counters == nil {
		return
	}
	// counters are best-effort telemetry; a counter failure never blocks a
	// decision, and never skips the remaining counters
	if err := eng.Counters.Increment(ctx, "decision", string(rec.Decision)); err != nil {
		eng.Logger.Warn("counter increment failed", "counter", "decision", "err", err)
	}
	if verdict.RequiresReview() {
		if err := eng.Counters.Increment(ctx, "violations", item.AuthorID); err != nil {
			eng.Logger.Warn("counter increment failed", "counter", "violations", "err", err)
		}
	}
	if !rec.Automated() {
		if err := eng.Counters.IncrementDistinct(ctx, "operators", "active", rec.ResolvedBy); err != nil {
			eng.Logger.Warn("counter increment failed", "counter", "operators", "err", err)
		}
	}
}

// GetViolationCount returns how many flagged items this author has had within
// the period (total, day, hour). An engine wired without counters reports
// zero for everything.
func (eng *Engine) GetViolationCount(ctx context.Context, authorID, period string) (int, error) {
	if eng.Counters == nil {
		return 0, nil
	}
	return eng.Counters.GetCount(ctx, "violations", authorID, period)
}
