package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"pookiey_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MatchService is the read side of the match graph plus the unmatch
// transition. Match creation lives in InteractionService.
type MatchService struct {
	Dynamo DynamoAPI

	now func() time.Time
}

func NewMatchService(dynamo DynamoAPI) *MatchService {
	return &MatchService{Dynamo: dynamo, now: time.Now}
}

// GetMatchesForUser retrieves the active matches for a user, enriched with
// the other participant's display projection. A user can sit on either side
// of the canonical ordering, so both orientations are queried.
func (ms *MatchService) GetMatchesForUser(ctx context.Context, userID string) ([]models.MatchWithProfile, error) {
	expressionValues := map[string]types.AttributeValue{
		":userId": &types.AttributeValueMemberS{Value: userID},
	}

	asUser1, err := ms.Dynamo.QueryItems(ctx, models.MatchesTable, "user1Id = :userId", expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}
	asUser2, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.MatchesTable, models.User2Index, "user2Id = :userId", expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches: %w", err)
	}

	matches := []models.MatchWithProfile{}
	for _, item := range append(asUser1, asUser2...) {
		var match models.Match
		if err := attributevalue.UnmarshalMap(item, &match); err != nil {
			log.Printf("skipping malformed match item: %v", err)
			continue
		}
		if match.Status != models.MatchStatusMatched {
			continue
		}

		otherID, ok := match.OtherUser(userID)
		if !ok {
			continue
		}
		other, err := ms.getProfile(ctx, otherID)
		if err != nil || other == nil {
			continue // Skip matches whose counterpart profile is gone
		}

		matches = append(matches, models.MatchWithProfile{Match: match, OtherUser: other.Summary()})
	}

	return matches, nil
}

// GetAdmirers retrieves users who sent a positive interaction toward the
// user and have not been acted on in return yet.
func (ms *MatchService) GetAdmirers(ctx context.Context, userID string) ([]models.AdmirerView, error) {
	expressionValues := map[string]types.AttributeValue{
		":toUser": &types.AttributeValueMemberS{Value: userID},
	}
	items, err := ms.Dynamo.QueryItemsWithIndex(ctx, models.InteractionsTable, models.ToUserIndex, "toUser = :toUser", expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch admirers: %w", err)
	}

	actedOn, err := ms.interactedUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	admirers := []models.AdmirerView{}
	for _, item := range items {
		var interaction models.Interaction
		if err := attributevalue.UnmarshalMap(item, &interaction); err != nil {
			log.Printf("skipping malformed interaction item: %v", err)
			continue
		}
		if !interaction.IsPositive() {
			continue
		}
		if actedOn[interaction.FromUser] {
			continue
		}

		sender, err := ms.getProfile(ctx, interaction.FromUser)
		if err != nil || sender == nil {
			continue
		}

		admirers = append(admirers, models.AdmirerView{
			FromUser:  interaction.FromUser,
			Type:      interaction.Type,
			CreatedAt: interaction.CreatedAt,
			Sender:    sender.Summary(),
		})
	}

	return admirers, nil
}

// Unmatch transitions the pair's match to unmatched. The interaction rows
// stay behind, so neither user resurfaces in the other's discovery feed.
func (ms *MatchService) Unmatch(ctx context.Context, byUser, withUser string) (*models.Match, error) {
	if byUser == withUser {
		return nil, ErrSelfInteraction
	}

	user1, user2 := models.CanonicalPair(byUser, withUser)
	key := map[string]types.AttributeValue{
		"user1Id": &types.AttributeValueMemberS{Value: user1},
		"user2Id": &types.AttributeValueMemberS{Value: user2},
	}

	item, err := ms.Dynamo.GetItem(ctx, models.MatchesTable, key)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMatchNotFound
	}
	var current models.Match
	if err := attributevalue.UnmarshalMap(item, &current); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	// Only an active match can be dissolved; a pending or already
	// unmatched row reads as no match to dissolve.
	if current.Status != models.MatchStatusMatched {
		return nil, ErrMatchNotFound
	}

	now := ms.now().UTC().Format(time.RFC3339)
	updateExpression := "SET #status = :unmatched, updatedAt = :now"
	updated, err := ms.Dynamo.UpdateItem(ctx, models.MatchesTable, updateExpression, key,
		map[string]types.AttributeValue{
			":unmatched": &types.AttributeValueMemberS{Value: models.MatchStatusUnmatched},
			":now":       &types.AttributeValueMemberS{Value: now},
		},
		map[string]string{"#status": "status"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to unmatch: %w", err)
	}

	var match models.Match
	if err := attributevalue.UnmarshalMap(updated, &match); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}
	log.Printf("💔 Unmatched: %s and %s (by %s)", user1, user2, byUser)
	return &match, nil
}

func (ms *MatchService) interactedUsers(ctx context.Context, userID string) (map[string]bool, error) {
	expressionValues := map[string]types.AttributeValue{
		":fromUser": &types.AttributeValueMemberS{Value: userID},
	}
	items, err := ms.Dynamo.QueryItems(ctx, models.InteractionsTable, "fromUser = :fromUser", expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	interacted := make(map[string]bool)
	for _, item := range items {
		var interaction models.Interaction
		if err := attributevalue.UnmarshalMap(item, &interaction); err != nil {
			continue
		}
		interacted[interaction.ToUser] = true
	}
	return interacted, nil
}

func (ms *MatchService) getProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := ms.Dynamo.GetItem(ctx, models.UserProfilesTable, map[string]types.AttributeValue{
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
