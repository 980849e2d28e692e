package models

// ✅ Interaction Types
const (
	InteractionTypeLike      = "like"
	InteractionTypeDislike   = "dislike"
	InteractionTypeSuperlike = "superlike"
)

// ✅ Match Statuses
const (
	MatchStatusPending   = "pending"
	MatchStatusMatched   = "matched"
	MatchStatusUnmatched = "unmatched"
)

// ✅ Subscription Plans
const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPremium = "premium"
	PlanSuper   = "super"
)

// ✅ Subscription Statuses
const (
	SubscriptionStatusNone    = "none"
	SubscriptionStatusPending = "pending"
	SubscriptionStatusActive  = "active"
	SubscriptionStatusExpired = "expired"
)
