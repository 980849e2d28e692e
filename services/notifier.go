package services

import (
	"context"
	"log"

	"pookiey_server/models"
)

// MatchEvent carries everything a notification collaborator needs to push
// an "it's a match" event without re-querying the engine.
type MatchEvent struct {
	Match *models.Match      `json:"match"`
	User1 models.UserSummary `json:"user1"`
	User2 models.UserSummary `json:"user2"`
}

// MatchNotifier is the outbound contract to the push/messaging
// collaborator. Delivery itself is outside this engine.
type MatchNotifier interface {
	NotifyMatch(ctx context.Context, event MatchEvent)
}

// LogMatchNotifier is the default no-delivery notifier.
type LogMatchNotifier struct{}

func (LogMatchNotifier) NotifyMatch(_ context.Context, event MatchEvent) {
	log.Printf("🎉 Match created: %s ❤️ %s", event.Match.User1ID, event.Match.User2ID)
}
