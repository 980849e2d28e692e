package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"pookiey_server/config"
	"pookiey_server/models"
	"pookiey_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DiscoveryService produces the ranked candidate feed. It is read-only: it
// never mutates interactions, matches or quota state.
type DiscoveryService struct {
	Dynamo DynamoAPI
	Config config.DiscoveryConfig

	now func() time.Time
}

func NewDiscoveryService(dynamo DynamoAPI, cfg config.DiscoveryConfig) *DiscoveryService {
	return &DiscoveryService{Dynamo: dynamo, Config: cfg, now: time.Now}
}

// Discover returns candidates for a user, filtered by distance, age, gender
// preference and prior interactions, ranked by interest affinity and
// proximity. Fails with ErrLocationRequired when the requester has no
// coordinates on file rather than silently returning an unfiltered list.
func (s *DiscoveryService) Discover(ctx context.Context, userID string) ([]models.CandidateView, error) {
	requester, err := s.getProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if !requester.HasLocation() {
		return nil, ErrLocationRequired
	}

	interacted, err := s.interactedUsers(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.scanProfiles(ctx)
	if err != nil {
		return nil, err
	}

	return s.rankCandidates(requester, profiles, interacted), nil
}

// rankCandidates runs the filter stages over the candidate pool and orders
// the survivors. Kept separate from the storage reads so each stage is
// testable on plain data.
func (s *DiscoveryService) rankCandidates(requester *models.UserProfile, profiles []models.UserProfile, interacted map[string]bool) []models.CandidateView {
	now := s.now().UTC()

	maxKm := requester.Preferences.DistanceMaxKm
	if maxKm <= 0 {
		maxKm = s.Config.DefaultMaxDistanceKm
	}
	ageMin, ageMax := requester.Preferences.AgeRangeMin, requester.Preferences.AgeRangeMax
	if ageMin <= 0 {
		ageMin = s.Config.DefaultAgeMin
	}
	if ageMax <= 0 {
		ageMax = s.Config.DefaultAgeMax
	}
	showMe := make(map[string]bool)
	for _, gender := range requester.Preferences.ShowMe {
		showMe[gender] = true
	}
	requesterInterests := make(map[string]bool)
	for _, interest := range requester.Interests {
		requesterInterests[interest] = true
	}

	candidates := []models.CandidateView{}
	for i := range profiles {
		candidate := &profiles[i]

		if candidate.UserID == requester.UserID {
			continue
		}
		if candidate.Status != "" && candidate.Status != "active" {
			continue
		}
		if !candidate.HasLocation() {
			continue
		}

		distanceKm := utils.CalculateDistance(*requester.Latitude, *requester.Longitude, *candidate.Latitude, *candidate.Longitude)
		if distanceKm > maxKm {
			continue
		}

		age := candidateAge(candidate.DateOfBirth, now)
		if age < ageMin || age > ageMax {
			continue
		}

		if len(showMe) > 0 && !showMe[candidate.Gender] {
			continue
		}

		// Any prior interaction hides a user permanently, dislikes included.
		if interacted[candidate.UserID] {
			continue
		}

		shared := 0
		for _, interest := range candidate.Interests {
			if requesterInterests[interest] {
				shared++
			}
		}
		if len(requesterInterests) > 0 && shared < s.Config.MinSharedInterests {
			continue
		}

		candidates = append(candidates, models.CandidateView{
			UserID:           candidate.UserID,
			DisplayName:      candidate.DisplayName,
			FirstName:        candidate.FirstName,
			Age:              age,
			Gender:           candidate.Gender,
			Bio:              candidate.Bio,
			Photos:           candidate.Photos,
			Interests:        candidate.Interests,
			DistanceInMeters: math.Round(distanceKm * 1000),
			SharedInterests:  shared,
		})
	}

	rankByAffinity := len(requesterInterests) > 0
	sort.SliceStable(candidates, func(i, j int) bool {
		if rankByAffinity && candidates[i].SharedInterests != candidates[j].SharedInterests {
			return candidates[i].SharedInterests > candidates[j].SharedInterests
		}
		return candidates[i].DistanceInMeters < candidates[j].DistanceInMeters
	})

	if s.Config.MaxResults > 0 && len(candidates) > s.Config.MaxResults {
		candidates = candidates[:s.Config.MaxResults]
	}
	return candidates
}

// interactedUsers collects every user the requester has already acted on.
func (s *DiscoveryService) interactedUsers(ctx context.Context, userID string) (map[string]bool, error) {
	keyCondition := "fromUser = :fromUser"
	expressionValues := map[string]types.AttributeValue{
		":fromUser": &types.AttributeValueMemberS{Value: userID},
	}

	items, err := s.Dynamo.QueryItems(ctx, models.InteractionsTable, keyCondition, expressionValues, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interactions: %w", err)
	}

	interacted := make(map[string]bool)
	for _, item := range items {
		var interaction models.Interaction
		if err := attributevalue.UnmarshalMap(item, &interaction); err != nil {
			return nil, fmt.Errorf("failed to unmarshal interaction: %w", err)
		}
		interacted[interaction.ToUser] = true
	}
	return interacted, nil
}

func (s *DiscoveryService) scanProfiles(ctx context.Context) ([]models.UserProfile, error) {
	items, err := s.Dynamo.ScanItems(ctx, models.UserProfilesTable)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profiles: %w", err)
	}

	var profiles []models.UserProfile
	if err := attributevalue.UnmarshalListOfMaps(items, &profiles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}
	return profiles, nil
}

func (s *DiscoveryService) getProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
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

// candidateAge parses the stored RFC3339 date of birth. Unparsable dates
// yield 0, which the age filter then rejects.
func candidateAge(dateOfBirth string, now time.Time) int {
	if dateOfBirth == "" {
		return 0
	}
	dob, err := time.Parse(time.RFC3339, dateOfBirth)
	if err != nil {
		return 0
	}
	return utils.CalculateAge(dob, now)
}
