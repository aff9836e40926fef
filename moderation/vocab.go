package moderation

// Category is a policy violation category assigned by a classifier.
type Category string

const (
	CategoryNone           Category = "none"
	CategoryHarassment     Category = "harassment"
	CategoryHateSpeech     Category = "hate-speech"
	CategoryViolence       Category = "violence"
	CategoryNudity         Category = "nudity"
	CategorySpam           Category = "spam"
	CategoryMisinformation Category = "misinformation"
	CategorySelfHarm       Category = "self-harm"
	CategoryCopyright      Category = "copyright"
)

// Categories lists every violation category, including CategoryNone.
var Categories = []Category{
	CategoryNone,
	CategoryHarassment,
	CategoryHateSpeech,
	CategoryViolence,
	CategoryNudity,
	CategorySpam,
	CategoryMisinformation,
	CategorySelfHarm,
	CategoryCopyright,
}

// Severity indicates how serious a detected violation is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Action is what a classifier recommends doing about a content item.
type Action string

const (
	ActionApprove       Action = "approve"
	ActionFlagForReview Action = "flag-for-review"
	ActionRemove        Action = "remove"
	ActionWarn          Action = "warn"
	ActionRestrict      Action = "restrict"
)

// Decision is the final enforcement outcome recorded for a content item.
type Decision string

const (
	DecisionApprove       Decision = "approve"
	DecisionWarn          Decision = "warn"
	DecisionRestrict      Decision = "restrict"
	DecisionRemove        Decision = "remove"
	DecisionFlagForReview Decision = "flag-for-review"
)

// Resolver identity sentinels for records not resolved by a human operator.
const (
	ResolverAutomated = "automated"
	ResolverTimeout   = "timeout"
)
