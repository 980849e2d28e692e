package services

import (
	"time"

	"pookiey_server/config"
	"pookiey_server/models"
)

// QuotaDecision is the outcome of evaluating a user's daily interaction
// allowance. Denied is a paywall signal, not an error.
type QuotaDecision struct {
	Allowed   bool `json:"allowed"`
	Limit     int  `json:"limit"`
	Remaining int  `json:"remaining"`
	// NeedsReset marks that the stored counter belongs to a prior calendar
	// day and must be reset in the same atomic unit as the dependent write.
	NeedsReset bool `json:"-"`
}

// QuotaService maps a user's subscription snapshot onto the table-driven
// daily limit and evaluates the rolling window.
type QuotaService struct {
	Config config.QuotaConfig
}

// DailyLimitFor resolves the daily interaction limit for a profile. A paid
// plan only counts while the subscription snapshot is active; everything
// else falls back to the free allowance. A limit of 0 or below means
// unlimited.
func (qs *QuotaService) DailyLimitFor(profile *models.UserProfile) int {
	plan := models.PlanFree
	if profile.Subscription.Status == models.SubscriptionStatusActive {
		plan = profile.Subscription.Plan
	}

	switch plan {
	case models.PlanBasic:
		return qs.Config.BasicDailyLimit
	case models.PlanPremium:
		return qs.Config.PremiumDailyLimit
	case models.PlanSuper:
		return qs.Config.SuperDailyLimit
	default:
		return qs.Config.FreeDailyLimit
	}
}

// Evaluate decides whether the user may consume one interaction right now.
// It does not mutate anything; the caller applies the increment (and the
// rollover reset, if flagged) inside the interaction transaction.
func (qs *QuotaService) Evaluate(profile *models.UserProfile, now time.Time) QuotaDecision {
	limit := qs.DailyLimitFor(profile)

	count := profile.DailyInteractionCount
	needsReset := isPriorDay(profile.LastInteractionResetAt, now)
	if needsReset {
		count = 0
	}

	if limit <= 0 {
		return QuotaDecision{Allowed: true, Limit: limit, Remaining: -1, NeedsReset: needsReset}
	}
	if count >= limit {
		return QuotaDecision{Allowed: false, Limit: limit, Remaining: 0, NeedsReset: needsReset}
	}

	return QuotaDecision{
		Allowed:    true,
		Limit:      limit,
		Remaining:  limit - count - 1,
		NeedsReset: needsReset,
	}
}

// isPriorDay reports whether the stored reset stamp falls on an earlier UTC
// calendar day than now. An unset or unparsable stamp counts as prior, so
// the first interaction of a fresh user starts a new window.
func isPriorDay(resetAt string, now time.Time) bool {
	if resetAt == "" {
		return true
	}
	last, err := time.Parse(time.RFC3339, resetAt)
	if err != nil {
		return true
	}

	lastY, lastM, lastD := last.UTC().Date()
	nowY, nowM, nowD := now.UTC().Date()
	if lastY != nowY {
		return lastY < nowY
	}
	if lastM != nowM {
		return lastM < nowM
	}
	return lastD < nowD
}
