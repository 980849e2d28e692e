package services

import (
	"context"
	"fmt"

	"pookiey_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type UserProfileService struct {
	Dynamo DynamoAPI
}

func NewUserProfileService(dynamo DynamoAPI) *UserProfileService {
	return &UserProfileService{Dynamo: dynamo}
}

// AddUserProfile adds a new user profile to DynamoDB
func (ups *UserProfileService) AddUserProfile(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrUserNotFound)
	}
	// Quota state always starts clean, whatever the caller sent.
	profile.DailyInteractionCount = 0
	profile.LastInteractionResetAt = ""

	if err := ups.Dynamo.PutItem(ctx, models.UserProfilesTable, profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetUserProfile retrieves a user profile by ID
func (ups *UserProfileService) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	item, err := ups.Dynamo.GetItem(ctx, models.UserProfilesTable, map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// UpdateLocation stores new coordinates for a user.
func (ups *UserProfileService) UpdateLocation(ctx context.Context, userID string, latitude, longitude float64, city string) (*models.UserProfile, error) {
	updateExpression := "SET latitude = :lat, longitude = :lon, city = :city"
	values := map[string]types.AttributeValue{
		":lat":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", latitude)},
		":lon":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", longitude)},
		":city": &types.AttributeValueMemberS{Value: city},
	}
	return ups.applyUpdate(ctx, userID, updateExpression, values, nil)
}

// UpdatePreferences replaces the discovery preferences for a user.
func (ups *UserProfileService) UpdatePreferences(ctx context.Context, userID string, prefs models.Preferences) (*models.UserProfile, error) {
	marshaled, err := attributevalue.Marshal(prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preferences: %w", err)
	}

	updateExpression := "SET preferences = :prefs"
	values := map[string]types.AttributeValue{
		":prefs": marshaled,
	}
	return ups.applyUpdate(ctx, userID, updateExpression, values, nil)
}

func (ups *UserProfileService) applyUpdate(
	ctx context.Context,
	userID string,
	updateExpression string,
	values map[string]types.AttributeValue,
	names map[string]string,
) (*models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}

	updated, err := ups.Dynamo.UpdateItem(ctx, models.UserProfilesTable, updateExpression, key, values, names)
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(updated, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}
