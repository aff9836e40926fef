package engine

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/warden-social/warden/countstore"
	"github.com/warden-social/warden/gate"
	"github.com/warden-social/warden/ledger"
	"github.com/warden-social/warden/moderation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// autoResponder answers prompts as the addressed operator, using a canned
// answer per content ID.
type autoResponder struct {
	g       *gate.Gate
	answers map[string]string

	lk       sync.Mutex
	prompted []string
}

func (r *autoResponder) Publish(ctx context.Context, req gate.Request) error {
	r.lk.Lock()
	r.prompted = append(r.prompted, req.ContentID)
	r.lk.Unlock()
	go r.g.Deliver(gate.Response{
		ContentID: req.ContentID,
		Operator:  req.Operator,
		Text:      r.answers[req.ContentID],
	})
	return nil
}

func (r *autoResponder) promptedIDs() []string {
	r.lk.Lock()
	defer r.lk.Unlock()
	return append([]string{}, r.prompted...)
}

func TestEngineAutoApprove(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(time.Second)
	responder := &autoResponder{g: eng.Gate, answers: map[string]string{}}
	eng.Gate.Notifier = responder

	items := TestContentItems()
	rec, err := eng.ProcessContent(ctx, &items[0])
	require.NoError(t, err)

	assert.Equal(moderation.DecisionApprove, rec.Decision)
	assert.Equal(moderation.ResolverAutomated, rec.ResolvedBy)
	// clean content never touches the gate
	assert.Empty(responder.promptedIDs())
	assert.Empty(eng.Gate.Pending())
}

func TestEngineEndToEnd(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(5 * time.Second)
	responder := &autoResponder{g: eng.Gate, answers: map[string]string{
		"POST-002": "remove",
		"POST-003": "warn",
	}}
	eng.Gate.Notifier = responder

	items := TestContentItems()
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(item *moderation.ContentItem) {
			defer wg.Done()
			_, err := eng.ProcessContent(ctx, item)
			assert.NoError(err)
		}(&items[i])
	}
	wg.Wait()

	rec, err := eng.Ledger.Get(ctx, "POST-001")
	require.NoError(t, err)
	assert.Equal(moderation.DecisionApprove, rec.Decision)
	assert.Equal(moderation.ResolverAutomated, rec.ResolvedBy)

	rec, err = eng.Ledger.Get(ctx, "POST-002")
	require.NoError(t, err)
	assert.Equal(moderation.DecisionRemove, rec.Decision)
	assert.Equal(moderation.CategoryHarassment, rec.Category)
	assert.Equal(moderation.SeverityMedium, rec.Severity)
	assert.Equal("mod-johnson", rec.ResolvedBy)

	rec, err = eng.Ledger.Get(ctx, "POST-003")
	require.NoError(t, err)
	assert.Equal(moderation.DecisionWarn, rec.Decision)
	assert.Equal(moderation.CategoryNudity, rec.Category)
	assert.Equal("mod-johnson", rec.ResolvedBy)

	// only the two flagged items were surfaced for review
	assert.ElementsMatch([]string{"POST-002", "POST-003"}, responder.promptedIDs())

	// violation counters track the flagged authors
	c, err := eng.GetViolationCount(ctx, "USER-67890", "total")
	require.NoError(t, err)
	assert.Equal(1, c)
	c, err = eng.GetViolationCount(ctx, "USER-12345", "total")
	require.NoError(t, err)
	assert.Equal(0, c)

	report, err := eng.SummaryReport(ctx)
	require.NoError(t, err)
	assert.Contains(report, "POST-002: REMOVE")
	assert.Contains(report, "POST-003: WARN")
	assert.Contains(report, "3 item(s) processed")
}

func TestEngineUnrecognizedAnswerDefers(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(time.Second)
	eng.Gate.Notifier = &autoResponder{g: eng.Gate, answers: map[string]string{
		"POST-002": "hmm, maybe?",
	}}

	items := TestContentItems()
	rec, err := eng.ProcessContent(ctx, &items[1])
	require.NoError(t, err)

	// ambiguous input defers, never approves
	assert.Equal(moderation.DecisionFlagForReview, rec.Decision)
	assert.Equal("mod-johnson", rec.ResolvedBy)
}

func TestEngineTimeout(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// nil notifier: the prompt goes nowhere and nobody answers
	eng := EngineTestFixture(30 * time.Millisecond)

	items := TestContentItems()
	rec, err := eng.ProcessContent(ctx, &items[1])
	require.NoError(t, err)

	assert.Equal(moderation.DecisionFlagForReview, rec.Decision)
	assert.Equal(moderation.ResolverTimeout, rec.ResolvedBy)
	assert.Equal(moderation.CategoryHarassment, rec.Category)

	got, err := eng.Ledger.Get(ctx, "POST-002")
	require.NoError(t, err)
	assert.Equal(moderation.DecisionFlagForReview, got.Decision)
	assert.Empty(eng.Gate.Pending())
}

func TestEngineDuplicateSlot(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(time.Second)
	items := TestContentItems()

	// occupy the item's slot directly, as a concurrent task would
	h, err := eng.Gate.Open(ctx, gate.Request{ContentID: "POST-002", Operator: "mod-johnson"})
	require.NoError(t, err)
	defer eng.Gate.Close(h)

	_, err = eng.ProcessContent(ctx, &items[1])
	assert.ErrorIs(err, gate.ErrDuplicateRequest)

	// no record was written for the item still in flight
	_, err = eng.Ledger.Get(ctx, "POST-002")
	assert.ErrorIs(err, ledger.ErrRecordNotFound)
}

func TestEngineRecordIsFinal(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(time.Second)
	eng.Gate.Notifier = &autoResponder{g: eng.Gate, answers: map[string]string{
		"POST-002": "restrict",
	}}

	items := TestContentItems()
	rec, err := eng.ProcessContent(ctx, &items[1])
	require.NoError(t, err)
	assert.Equal(moderation.DecisionRestrict, rec.Decision)

	// reprocessing the same item must not overwrite the recorded decision
	_, err = eng.ProcessContent(ctx, &items[1])
	assert.ErrorIs(err, ledger.ErrDuplicateRecord)

	got, err := eng.Ledger.Get(ctx, "POST-002")
	require.NoError(t, err)
	assert.Equal(moderation.DecisionRestrict, got.Decision)
}

// panicClassifier blows up on every item, standing in for a buggy heuristic.
type panicClassifier struct{}

func (panicClassifier) Classify(ctx context.Context, item *moderation.ContentItem, user *moderation.UserProfile) (*moderation.Verdict, error) {
	panic("heuristic out of bounds")
}

func TestEngineClassifierPanic(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(time.Second)
	healthy := eng.Classifier
	eng.Classifier = panicClassifier{}

	items := TestContentItems()
	rec, err := eng.ProcessContent(ctx, &items[0])
	assert.Error(err)
	assert.Nil(rec)

	// the failed item left nothing behind
	_, err = eng.Ledger.Get(ctx, items[0].ID)
	assert.ErrorIs(err, ledger.ErrRecordNotFound)
	assert.Empty(eng.Gate.Pending())

	// and the engine is still serviceable afterwards
	eng.Classifier = healthy
	rec, err = eng.ProcessContent(ctx, &items[0])
	require.NoError(t, err)
	assert.Equal(moderation.DecisionApprove, rec.Decision)
}

// faultyCountStore fails decision increments and passes everything else
// through.
type faultyCountStore struct {
	countstore.CountStore
}

func (s faultyCountStore) Increment(ctx context.Context, name, val string) error {
	if name == "decision" {
		return fmt.Errorf("connection refused")
	}
	return s.CountStore.Increment(ctx, name, val)
}

func TestEngineCounterFailureIsNonFatal(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(time.Second)
	eng.Counters = faultyCountStore{eng.Counters}
	eng.Gate.Notifier = &autoResponder{g: eng.Gate, answers: map[string]string{
		"POST-002": "warn",
	}}

	items := TestContentItems()
	rec, err := eng.ProcessContent(ctx, &items[1])
	require.NoError(t, err)
	assert.Equal(moderation.DecisionWarn, rec.Decision)

	// the violations counter still advanced past the failing decision counter
	c, err := eng.GetViolationCount(ctx, items[1].AuthorID, "total")
	require.NoError(t, err)
	assert.Equal(1, c)
}

func TestEngineViolationCountWithoutCounters(t *testing.T) {
	assert := assert.New(t)

	eng := EngineTestFixture(time.Second)
	eng.Counters = nil

	c, err := eng.GetViolationCount(context.Background(), "USER-12345", "total")
	assert.NoError(err)
	assert.Equal(0, c)
}

func TestEngineUnknownAuthor(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	eng := EngineTestFixture(time.Second)
	item := moderation.ContentItem{
		ID:       "POST-999",
		AuthorID: "USER-00000",
		Text:     "hello there",
	}

	rec, err := eng.ProcessContent(ctx, &item)
	require.NoError(t, err)
	assert.Equal(moderation.DecisionApprove, rec.Decision)
}
