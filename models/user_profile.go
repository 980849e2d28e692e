package models

// UserProfile defines the structure for user profiles, including the
// embedded daily-interaction quota state mutated by the interaction flow.
type UserProfile struct {
	UserID      string   `dynamodbav:"userId" json:"userId"` // ✅ Partition Key
	Email       string   `dynamodbav:"email,omitempty" json:"email,omitempty"`
	DisplayName string   `dynamodbav:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string   `dynamodbav:"photoURL,omitempty" json:"photoURL,omitempty"`
	Status      string   `dynamodbav:"status,omitempty" json:"status,omitempty"` // active, banned, deleted, suspended
	FirstName   string   `dynamodbav:"firstName,omitempty" json:"firstName,omitempty"`
	LastName    string   `dynamodbav:"lastName,omitempty" json:"lastName,omitempty"`
	DateOfBirth string   `dynamodbav:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"` // RFC3339
	Gender      string   `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	Bio         string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Interests   []string `dynamodbav:"interests,omitempty" json:"interests,omitempty"`
	Photos      []string `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	Latitude    *float64 `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   *float64 `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`
	City        string   `dynamodbav:"city,omitempty" json:"city,omitempty"`

	Preferences  Preferences          `dynamodbav:"preferences,omitempty" json:"preferences,omitempty"`
	Subscription SubscriptionSnapshot `dynamodbav:"subscription,omitempty" json:"subscription,omitempty"`

	// Quota state. Owned by the interaction flow; never writable through
	// the profile surface.
	DailyInteractionCount  int    `dynamodbav:"dailyInteractionCount" json:"dailyInteractionCount"`
	LastInteractionResetAt string `dynamodbav:"lastInteractionResetAt,omitempty" json:"lastInteractionResetAt,omitempty"` // RFC3339
}

// Preferences controls the discovery feed for a user.
type Preferences struct {
	DistanceMaxKm float64  `dynamodbav:"distanceMaxKm,omitempty" json:"distanceMaxKm,omitempty"`
	AgeRangeMin   int      `dynamodbav:"ageRangeMin,omitempty" json:"ageRangeMin,omitempty"`
	AgeRangeMax   int      `dynamodbav:"ageRangeMax,omitempty" json:"ageRangeMax,omitempty"`
	ShowMe        []string `dynamodbav:"showMe,omitempty" json:"showMe,omitempty"` // empty = everyone
}

// SubscriptionSnapshot is the read-only tier snapshot maintained by the
// billing collaborator. The engine only consumes it to pick a quota limit.
type SubscriptionSnapshot struct {
	Plan   string `dynamodbav:"plan,omitempty" json:"plan,omitempty"`     // free, basic, premium, super
	Status string `dynamodbav:"status,omitempty" json:"status,omitempty"` // none, pending, active, expired
}

// UserSummary is the minimal display projection returned alongside a match
// so the client can render the match screen without a second round trip.
type UserSummary struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	AvatarURL   string `json:"avatarURL,omitempty"`
	FirstPhoto  string `json:"firstPhoto,omitempty"`
}

// Summary projects a profile into its display summary.
func (p *UserProfile) Summary() UserSummary {
	summary := UserSummary{
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		FirstName:   p.FirstName,
		AvatarURL:   p.PhotoURL,
	}
	if len(p.Photos) > 0 {
		summary.FirstPhoto = p.Photos[0]
	}
	return summary
}

// HasLocation reports whether the profile carries coordinates. The fields
// are pointers so (0, 0) remains a valid position; only a profile that never
// went through the location flow has them absent.
func (p *UserProfile) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "Users"
