// Package gate implements the human-confirmation gate: a synchronized
// rendezvous between an in-flight moderation task and an external operator's
// answer.
//
// Each content item gets at most one pending slot. The processing task blocks
// in Await until a response arrives whose content ID and operator identity
// both match the open request; responses are never matched on arrival order,
// and a response addressed to a different operator can never satisfy a slot.
// Unmatched responses are held in a bounded buffer and re-checked whenever a
// new slot opens, then discarded as stale.
package gate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var (
	// ErrDuplicateRequest indicates a caller protocol violation: a second
	// request was opened for a content item with a live slot.
	ErrDuplicateRequest = errors.New("confirmation request already pending for content item")
	// ErrTimeout indicates no matching response arrived within the review deadline.
	ErrTimeout = errors.New("confirmation request timed out")
)

const defaultHoldLimit = 32

// Request asks one operator to confirm a moderation action for one content item.
type Request struct {
	ContentID string
	Operator  string
	Prompt    string
}

// Response is an operator's answer, routed back by content ID plus operator
// identity. A response is consumed by at most one matching request.
type Response struct {
	ContentID  string
	Operator   string
	Text       string
	ReceivedAt time.Time
}

// Notifier publishes rendered prompts out to operators. Transport is
// pluggable: console, slack webhook, HTTP, etc.
type Notifier interface {
	Publish(ctx context.Context, req Request) error
}

type slotState int

const (
	slotPending slotState = iota
	slotResolved
	slotCancelled
)

type slot struct {
	req   Request
	state slotState
	resp  chan Response
}

type heldResponse struct {
	resp   Response
	heldAt time.Time
}

// Gate manages pending-confirmation slots keyed by content ID. All slot and
// holding-area mutation goes through the Gate's own mutex; Open, Deliver, and
// Close may be called from different goroutines.
type Gate struct {
	Logger   *slog.Logger
	Notifier Notifier
	// ReviewTimeout bounds Await; zero means wait until context cancellation.
	ReviewTimeout time.Duration
	// HoldLimit bounds the unmatched-response holding area.
	HoldLimit int
	// HoldTTL bounds how long an unmatched response is retained. Zero falls
	// back to ReviewTimeout, or an hour if both are zero.
	HoldTTL time.Duration

	lk    sync.Mutex
	slots map[string]*slot
	held  []heldResponse
}

func NewGate(logger *slog.Logger, notifier Notifier, reviewTimeout time.Duration) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		Logger:        logger,
		Notifier:      notifier,
		ReviewTimeout: reviewTimeout,
		HoldLimit:     defaultHoldLimit,
		slots:         make(map[string]*slot),
	}
}

// Handle refers to one pending slot. The task which opened it awaits on it,
// and must Close it when done (resolved or not).
type Handle struct {
	ContentID string
	Operator  string

	gate *Gate
	slot *slot
}

// Open registers a pending slot for the request's content ID and publishes
// the prompt. Returns ErrDuplicateRequest if a live slot already exists for
// that content ID; callers should inspect the existing request rather than
// retry.
func (g *Gate) Open(ctx context.Context, req Request) (*Handle, error) {
	if req.ContentID == "" || req.Operator == "" {
		return nil, fmt.Errorf("confirmation request requires content ID and operator")
	}

	g.lk.Lock()
	if g.slots == nil {
		g.slots = make(map[string]*slot)
	}
	if _, ok := g.slots[req.ContentID]; ok {
		g.lk.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDuplicateRequest, req.ContentID)
	}
	s := &slot{
		req:   req,
		state: slotPending,
		resp:  make(chan Response, 1),
	}
	g.slots[req.ContentID] = s
	requestsOpened.Inc()

	// a response may already be waiting in the holding area
	g.matchHeldLocked(s)
	g.lk.Unlock()

	h := &Handle{
		ContentID: req.ContentID,
		Operator:  req.Operator,
		gate:      g,
		slot:      s,
	}

	if g.Notifier != nil {
		if err := g.Notifier.Publish(ctx, req); err != nil {
			g.Close(h)
			return nil, fmt.Errorf("publishing confirmation prompt: %w", err)
		}
	}
	return h, nil
}

// Await blocks until a matching response is delivered, the gate's review
// deadline expires (ErrTimeout), or ctx is cancelled. On timeout or
// cancellation the slot transitions to cancelled and any late response is
// treated as stale.
func (h *Handle) Await(ctx context.Context) (Response, error) {
	var deadline <-chan time.Time
	if h.gate.ReviewTimeout > 0 {
		timer := time.NewTimer(h.gate.ReviewTimeout)
		defer timer.Stop()
		deadline = timer.C
	}

	select {
	case resp := <-h.slot.resp:
		return resp, nil
	case <-deadline:
		if resp, ok := h.cancel(); ok {
			// response won the race against the timer
			return resp, nil
		}
		requestsTimedOut.Inc()
		return Response{}, fmt.Errorf("%w: %s", ErrTimeout, h.ContentID)
	case <-ctx.Done():
		if resp, ok := h.cancel(); ok {
			return resp, nil
		}
		return Response{}, ctx.Err()
	}
}

// cancel transitions a pending slot to cancelled. If the slot was already
// resolved, the buffered response is returned instead.
func (h *Handle) cancel() (Response, bool) {
	h.gate.lk.Lock()
	if h.slot.state == slotResolved {
		h.gate.lk.Unlock()
		return <-h.slot.resp, true
	}
	h.slot.state = slotCancelled
	h.gate.lk.Unlock()
	return Response{}, false
}

// Close releases the slot whether or not it was answered. After Close the
// content ID may be opened again; late responses are handled as stale.
func (g *Gate) Close(h *Handle) {
	g.lk.Lock()
	defer g.lk.Unlock()
	cur, ok := g.slots[h.ContentID]
	if !ok || cur != h.slot {
		return
	}
	delete(g.slots, h.ContentID)
}

// Deliver routes an operator response to a matching pending slot. Requires an
// exact match on both content ID and operator identity; a mismatch is not an
// error, only a non-match, and the response is buffered for a possible later
// slot. Delivery to an already-resolved slot is a no-op.
func (g *Gate) Deliver(resp Response) {
	if resp.ReceivedAt.IsZero() {
		resp.ReceivedAt = time.Now()
	}

	g.lk.Lock()
	defer g.lk.Unlock()

	g.pruneHeldLocked()

	s, ok := g.slots[resp.ContentID]
	if ok {
		switch {
		case s.state == slotResolved:
			// idempotent: answer already accepted for this slot
			return
		case s.state == slotCancelled:
			g.logger().Warn("stale response for cancelled request, discarding",
				"contentID", resp.ContentID, "operator", resp.Operator)
			responsesStale.Inc()
			return
		case s.req.Operator == resp.Operator:
			s.state = slotResolved
			s.resp <- resp
			responsesMatched.Inc()
			return
		}
		// operator mismatch on a live slot: never misapply, hold instead
		g.logger().Info("response operator does not match pending request, holding",
			"contentID", resp.ContentID, "got", resp.Operator, "want", s.req.Operator)
	}
	g.holdLocked(resp)
}

// Pending returns a snapshot of currently open requests, for inspection
// surfaces like the admin API.
func (g *Gate) Pending() []Request {
	g.lk.Lock()
	defer g.lk.Unlock()
	out := make([]Request, 0, len(g.slots))
	for _, s := range g.slots {
		if s.state == slotPending {
			out = append(out, s.req)
		}
	}
	return out
}

func (g *Gate) holdLocked(resp Response) {
	limit := g.HoldLimit
	if limit <= 0 {
		limit = defaultHoldLimit
	}
	if len(g.held) >= limit {
		g.logger().Warn("response holding area full, discarding",
			"contentID", resp.ContentID, "operator", resp.Operator)
		responsesStale.Inc()
		return
	}
	g.held = append(g.held, heldResponse{resp: resp, heldAt: time.Now()})
	responsesHeld.Inc()
	heldSize.Set(float64(len(g.held)))
}

// matchHeldLocked resolves a freshly-opened slot from the holding area when a
// matching response arrived before the request was opened.
func (g *Gate) matchHeldLocked(s *slot) {
	for i, hr := range g.held {
		if hr.resp.ContentID == s.req.ContentID && hr.resp.Operator == s.req.Operator {
			g.held = append(g.held[:i], g.held[i+1:]...)
			heldSize.Set(float64(len(g.held)))
			s.state = slotResolved
			s.resp <- hr.resp
			responsesMatched.Inc()
			return
		}
	}
}

func (g *Gate) pruneHeldLocked() {
	ttl := g.HoldTTL
	if ttl == 0 {
		ttl = g.ReviewTimeout
	}
	if ttl == 0 {
		ttl = time.Hour
	}
	cutoff := time.Now().Add(-ttl)
	kept := g.held[:0]
	for _, hr := range g.held {
		if hr.heldAt.Before(cutoff) {
			g.logger().Warn("held response expired, discarding",
				"contentID", hr.resp.ContentID, "operator", hr.resp.Operator)
			responsesStale.Inc()
			continue
		}
		kept = append(kept, hr)
	}
	g.held = kept
	heldSize.Set(float64(len(g.held)))
}

func (g *Gate) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}
