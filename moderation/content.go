package moderation

import "time"

// ContentItem is a single piece of user-generated content submitted for
// screening. Items are immutable once ingested; the moderation outcome is
// recorded separately as a ModerationRecord.
type ContentItem struct {
	ID          string    `json:"content_id"`
	AuthorID    string    `json:"user_id"`
	ContentType string    `json:"content_type"`
	Text        string    `json:"text"`
	MediaURLs   []string  `json:"media_urls,omitempty"`
	CreatedAt   time.Time `json:"timestamp"`
	Platform    string    `json:"platform,omitempty"`
	Context     string    `json:"context,omitempty"`
}

// UserProfile is read-only account metadata about a content author, used as
// classification context. Owned by the external user-data service.
type UserProfile struct {
	ID                 string `json:"user_id"`
	Username           string `json:"username"`
	AccountAgeDays     int    `json:"account_age_days"`
	PreviousViolations int    `json:"previous_violations"`
	ReputationScore    int    `json:"reputation_score"`
	Verified           bool   `json:"is_verified"`
	FollowerCount      int    `json:"follower_count"`
	Role               string `json:"role"`
}
