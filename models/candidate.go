package models

// CandidateView combines minimal profile fields with the computed
// distance/age/affinity used for discovery ranking. Derived only; never
// written back to DynamoDB.
type CandidateView struct {
	UserID           string   `json:"userId"`
	DisplayName      string   `json:"displayName,omitempty"`
	FirstName        string   `json:"firstName,omitempty"`
	Age              int      `json:"age"`
	Gender           string   `json:"gender,omitempty"`
	Bio              string   `json:"bio,omitempty"`
	Photos           []string `json:"photos,omitempty"`
	Interests        []string `json:"interests,omitempty"`
	DistanceInMeters float64  `json:"distanceInMeters"`
	SharedInterests  int      `json:"sharedInterests"`
}
