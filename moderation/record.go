package moderation

import "time"

// ModerationRecord is the terminal outcome for a content item: exactly one is
// written per processed item, and it is never mutated afterwards.
type ModerationRecord struct {
	ContentID  string    `json:"content_id" gorm:"primaryKey;column:content_id"`
	Decision   Decision  `json:"decision" gorm:"column:decision"`
	Category   Category  `json:"violation_category,omitempty" gorm:"column:category"`
	Severity   Severity  `json:"severity_level,omitempty" gorm:"column:severity"`
	Notes      string    `json:"notes,omitempty" gorm:"column:notes"`
	ResolvedBy string    `json:"resolved_by" gorm:"column:resolved_by"`
	ResolvedAt time.Time `json:"resolved_at" gorm:"column:resolved_at"`
}

// Automated reports whether the record was resolved without a human operator.
func (r *ModerationRecord) Automated() bool {
	return r.ResolvedBy == ResolverAutomated || r.ResolvedBy == ResolverTimeout
}
