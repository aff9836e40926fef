package engine

import (
	"fmt"
	"strings"

	"github.com/warden-social/warden/moderation"
)

// renderPrompt formats the structured review question shown to the operator.
func renderPrompt(item *moderation.ContentItem, user *moderation.UserProfile, verdict *moderation.Verdict) string {
	var b strings.Builder
	b.WriteString("CONTENT MODERATION REVIEW REQUIRED\n\n")
	fmt.Fprintf(&b, "Content ID: %s\n", item.ID)
	fmt.Fprintf(&b, "Posted by: %s\n\n", user.Username)
	fmt.Fprintf(&b, "CONTENT TEXT:\n%q\n\n", item.Text)
	b.WriteString("ASSESSMENT:\n")
	fmt.Fprintf(&b, "- Violation Category: %s\n", strings.ToUpper(string(verdict.Category)))
	fmt.Fprintf(&b, "- Severity Level: %s\n", strings.ToUpper(string(verdict.Severity)))
	fmt.Fprintf(&b, "- Confidence: %.2f\n\n", verdict.Confidence)
	fmt.Fprintf(&b, "EXPLANATION:\n%s\n\n", verdict.Explanation)
	b.WriteString("THIS CONTENT REQUIRES HUMAN REVIEW BEFORE TAKING ACTION.")
	return b.String()
}
