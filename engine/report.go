package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/warden-social/warden/moderation"
)

// SummaryReport renders a textual summary of all recorded decisions, for
// printing after a batch of items reaches terminal state.
func (eng *Engine) SummaryReport(ctx context.Context) (string, error) {
	recs, err := eng.Ledger.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing moderation records: %w", err)
	}

	var b strings.Builder
	b.WriteString("===== CONTENT MODERATION SUMMARY =====\n")
	for _, rec := range recs {
		fmt.Fprintf(&b, "- %s: %s\n", rec.ContentID, strings.ToUpper(string(rec.Decision)))
		if rec.Category != "" && rec.Category != moderation.CategoryNone {
			fmt.Fprintf(&b, "  Violation: %s (%s)\n", rec.Category, rec.Severity)
		}
		fmt.Fprintf(&b, "  Resolved by: %s\n", rec.ResolvedBy)
		fmt.Fprintf(&b, "  Resolved at: %s\n", rec.ResolvedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintf(&b, "%d item(s) processed\n", len(recs))
	return b.String(), nil
}
