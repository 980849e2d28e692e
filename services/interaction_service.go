package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pookiey_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// maxInteractAttempts bounds the transparent retry loop around transaction
// conflicts before the caller is asked to retry.
const maxInteractAttempts = 3

type InteractionService struct {
	Dynamo   DynamoAPI
	Quota    *QuotaService
	Notifier MatchNotifier

	now func() time.Time
}

func NewInteractionService(dynamo DynamoAPI, quota *QuotaService, notifier MatchNotifier) *InteractionService {
	if notifier == nil {
		notifier = LogMatchNotifier{}
	}
	return &InteractionService{
		Dynamo:   dynamo,
		Quota:    quota,
		Notifier: notifier,
		now:      time.Now,
	}
}

// InteractionResult is the outcome of one Interact call. Exactly one of the
// shapes of the inbound contract applies:
// already-interacted, paywall, no-match, or match.
type InteractionResult struct {
	AlreadyInteracted bool                `json:"alreadyInteracted,omitempty"`
	Quota             *QuotaDecision      `json:"quota,omitempty"` // set when denied
	IsMatch           bool                `json:"isMatch"`
	Interaction       *models.Interaction `json:"interaction,omitempty"`
	Match             *models.Match       `json:"match,omitempty"`
	User1             *models.UserSummary `json:"user1,omitempty"`
	User2             *models.UserSummary `json:"user2,omitempty"`
}

// Denied reports whether the quota gate stopped the interaction.
func (r *InteractionResult) Denied() bool {
	return r.Quota != nil && !r.Quota.Allowed
}

// Interact records a directional action from one user toward another and
// materializes the mutual match when the reciprocal positive interaction
// exists. The quota consumption, the interaction insert and the match
// insert commit as a single all-or-nothing transaction.
func (s *InteractionService) Interact(ctx context.Context, fromUser, toUser, interactionType string) (*InteractionResult, error) {
	if fromUser == toUser {
		return nil, ErrSelfInteraction
	}
	if !models.IsValidInteractionType(interactionType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInteractionType, interactionType)
	}

	for attempt := 0; attempt < maxInteractAttempts; attempt++ {
		result, retry, err := s.tryInteract(ctx, fromUser, toUser, interactionType)
		if err != nil {
			return nil, err
		}
		if retry {
			log.Printf("interaction %s -> %s conflicted, retrying (attempt %d)", fromUser, toUser, attempt+1)
			continue
		}
		return result, nil
	}

	return nil, ErrConflictRetryExhausted
}

// tryInteract runs one optimistic attempt: read state, build the
// transaction, execute. retry=true means state moved underneath us and the
// loop should re-read.
func (s *InteractionService) tryInteract(ctx context.Context, fromUser, toUser, interactionType string) (*InteractionResult, bool, error) {
	// Idempotent short-circuit: at most one interaction per ordered pair.
	existing, err := s.getInteraction(ctx, fromUser, toUser)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return &InteractionResult{AlreadyInteracted: true, Interaction: existing}, false, nil
	}

	actor, err := s.getProfile(ctx, fromUser)
	if err != nil {
		return nil, false, err
	}
	if actor == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrUserNotFound, fromUser)
	}
	target, err := s.getProfile(ctx, toUser)
	if err != nil {
		return nil, false, err
	}
	if target == nil {
		return nil, false, fmt.Errorf("%w: %s", ErrUserNotFound, toUser)
	}

	now := s.now().UTC()
	decision := s.Quota.Evaluate(actor, now)
	if !decision.Allowed {
		return &InteractionResult{Quota: &decision}, false, nil
	}

	reciprocal, err := s.getInteraction(ctx, toUser, fromUser)
	if err != nil {
		return nil, false, err
	}

	interaction := models.Interaction{
		FromUser:  fromUser,
		ToUser:    toUser,
		Type:      interactionType,
		CreatedAt: now.Format(time.RFC3339),
	}

	mutual := reciprocal != nil && reciprocal.IsPositive() && interaction.IsPositive()

	var match *models.Match
	txn := []types.TransactWriteItem{}

	putInteraction, err := buildInteractionPut(interaction)
	if err != nil {
		return nil, false, err
	}
	txn = append(txn, putInteraction)
	txn = append(txn, buildQuotaUpdate(actor, decision, now))

	if mutual {
		user1, user2 := models.CanonicalPair(fromUser, toUser)
		preMatch, err := s.getMatch(ctx, user1, user2)
		if err != nil {
			return nil, false, err
		}
		if preMatch != nil {
			// A prior match row survives (e.g. an unmatched pair); revive it
			// instead of inserting a duplicate.
			match = preMatch
			match.Status = models.MatchStatusMatched
			match.LastInteractionAt = now.Format(time.RFC3339)
			txn = append(txn, buildMatchRevive(user1, user2, now))
		} else {
			match = &models.Match{
				User1ID:           user1,
				User2ID:           user2,
				MatchID:           uuid.NewString(),
				Status:            models.MatchStatusMatched,
				InitiatedBy:       fromUser,
				LastInteractionAt: now.Format(time.RFC3339),
				CreatedAt:         now.Format(time.RFC3339),
			}
			putMatch, err := buildMatchPut(*match)
			if err != nil {
				return nil, false, err
			}
			txn = append(txn, putMatch)
		}
	}

	if err := s.Dynamo.TransactWriteItems(ctx, txn); err != nil {
		retry, herr := s.classifyTxnFailure(err)
		return nil, retry, herr
	}

	if !mutual && interaction.IsPositive() {
		// Two users liking each other in the same instant can both read "no
		// reciprocal yet" and commit without a match. Re-check after commit;
		// the unique constraint on the canonical pair guarantees a single
		// survivor either way.
		match, err = s.detectLateMatch(ctx, fromUser, toUser, now)
		if err != nil {
			return nil, false, err
		}
		mutual = match != nil
	}

	result := &InteractionResult{IsMatch: mutual, Interaction: &interaction, Match: match}
	if mutual {
		summary1, summary2 := orderSummaries(match, actor, target)
		result.User1 = &summary1
		result.User2 = &summary2
		s.Notifier.NotifyMatch(ctx, MatchEvent{Match: match, User1: summary1, User2: summary2})
	}
	return result, false, nil
}

// detectLateMatch closes the simultaneous-like window: after committing our
// interaction, re-read the reciprocal one and create the match if both
// directions are now positive. A losing concurrent writer degrades to
// reading the surviving row.
func (s *InteractionService) detectLateMatch(ctx context.Context, fromUser, toUser string, now time.Time) (*models.Match, error) {
	reciprocal, err := s.getInteraction(ctx, toUser, fromUser)
	if err != nil {
		return nil, err
	}
	if reciprocal == nil || !reciprocal.IsPositive() {
		return nil, nil
	}

	user1, user2 := models.CanonicalPair(fromUser, toUser)
	match := models.Match{
		User1ID:           user1,
		User2ID:           user2,
		MatchID:           uuid.NewString(),
		Status:            models.MatchStatusMatched,
		InitiatedBy:       fromUser,
		LastInteractionAt: now.Format(time.RFC3339),
		CreatedAt:         now.Format(time.RFC3339),
	}
	putMatch, err := buildMatchPut(match)
	if err != nil {
		return nil, err
	}
	if err := s.Dynamo.TransactWriteItems(ctx, []types.TransactWriteItem{putMatch}); err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			existing, gerr := s.getMatch(ctx, user1, user2)
			if gerr != nil {
				return nil, gerr
			}
			if existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return &match, nil
}

// classifyTxnFailure maps a transaction cancellation onto the retry
// decision. Every cancellation re-reads state through the outer loop; the
// short-circuits at the top of tryInteract then produce the right outcome
// (already interacted, paywall, surviving match).
func (s *InteractionService) classifyTxnFailure(err error) (bool, error) {
	var canceled *types.TransactionCanceledException
	if errors.As(err, &canceled) {
		return true, nil
	}
	var conflict *types.TransactionConflictException
	if errors.As(err, &conflict) {
		return true, nil
	}
	return false, fmt.Errorf("interaction transaction failed: %w", err)
}

func (s *InteractionService) getInteraction(ctx context.Context, fromUser, toUser string) (*models.Interaction, error) {
	item, err := s.Dynamo.GetItem(ctx, models.InteractionsTable, map[string]types.AttributeValue{
		"fromUser": &types.AttributeValueMemberS{Value: fromUser},
		"toUser":   &types.AttributeValueMemberS{Value: toUser},
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var interaction models.Interaction
	if err := attributevalue.UnmarshalMap(item, &interaction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal interaction: %w", err)
	}
	return &interaction, nil
}

func (s *InteractionService) getProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UserProfilesTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (s *InteractionService) getMatch(ctx context.Context, user1, user2 string) (*models.Match, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, map[string]types.AttributeValue{
		"user1Id": &types.AttributeValueMemberS{Value: user1},
		"user2Id": &types.AttributeValueMemberS{Value: user2},
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	return &match, nil
}

func buildInteractionPut(interaction models.Interaction) (types.TransactWriteItem, error) {
	item, err := attributevalue.MarshalMap(interaction)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal interaction: %w", err)
	}

	tableName := models.InteractionsTable
	condition := "attribute_not_exists(fromUser)"
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           &tableName,
			Item:                item,
			ConditionExpression: &condition,
		},
	}, nil
}

// buildQuotaUpdate is the compare-and-swap on the embedded quota state: the
// increment only commits when the counter and reset stamp still hold the
// values the decision was based on.
func buildQuotaUpdate(actor *models.UserProfile, decision QuotaDecision, now time.Time) types.TransactWriteItem {
	tableName := models.UserProfilesTable
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: actor.UserID},
	}

	if decision.NeedsReset {
		update := "SET dailyInteractionCount = :count, lastInteractionResetAt = :resetAt"
		condition := "lastInteractionResetAt = :prevResetAt"
		values := map[string]types.AttributeValue{
			":count":   &types.AttributeValueMemberN{Value: "1"},
			":resetAt": &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		}
		if actor.LastInteractionResetAt == "" {
			condition = "attribute_not_exists(lastInteractionResetAt)"
		} else {
			values[":prevResetAt"] = &types.AttributeValueMemberS{Value: actor.LastInteractionResetAt}
		}
		return types.TransactWriteItem{
			Update: &types.Update{
				TableName:                 &tableName,
				Key:                       key,
				UpdateExpression:          &update,
				ConditionExpression:       &condition,
				ExpressionAttributeValues: values,
			},
		}
	}

	update := "SET dailyInteractionCount = dailyInteractionCount + :one"
	condition := "dailyInteractionCount = :prevCount"
	values := map[string]types.AttributeValue{
		":one":       &types.AttributeValueMemberN{Value: "1"},
		":prevCount": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", actor.DailyInteractionCount)},
	}
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName:                 &tableName,
			Key:                       key,
			UpdateExpression:          &update,
			ConditionExpression:       &condition,
			ExpressionAttributeValues: values,
		},
	}
}

func buildMatchPut(match models.Match) (types.TransactWriteItem, error) {
	item, err := attributevalue.MarshalMap(match)
	if err != nil {
		return types.TransactWriteItem{}, fmt.Errorf("failed to marshal match: %w", err)
	}

	tableName := models.MatchesTable
	condition := "attribute_not_exists(user1Id)"
	return types.TransactWriteItem{
		Put: &types.Put{
			TableName:           &tableName,
			Item:                item,
			ConditionExpression: &condition,
		},
	}, nil
}

func buildMatchRevive(user1, user2 string, now time.Time) types.TransactWriteItem {
	tableName := models.MatchesTable
	update := "SET #status = :matched, lastInteractionAt = :now, updatedAt = :now"
	return types.TransactWriteItem{
		Update: &types.Update{
			TableName: &tableName,
			Key: map[string]types.AttributeValue{
				"user1Id": &types.AttributeValueMemberS{Value: user1},
				"user2Id": &types.AttributeValueMemberS{Value: user2},
			},
			UpdateExpression: &update,
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":matched": &types.AttributeValueMemberS{Value: models.MatchStatusMatched},
				":now":     &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
			},
		},
	}
}

// orderSummaries returns the display projections in canonical match order.
func orderSummaries(match *models.Match, actor, target *models.UserProfile) (models.UserSummary, models.UserSummary) {
	if match.User1ID == actor.UserID {
		return actor.Summary(), target.Summary()
	}
	return target.Summary(), actor.Summary()
}
