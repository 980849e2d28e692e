package models

// MatchWithProfile combines a Match with the other participant's display
// projection, so clients can render the matches list in one call.
type MatchWithProfile struct {
	Match
	OtherUser UserSummary `json:"otherUser"`
}

// AdmirerView is an inbound positive interaction enriched with the sender's
// display projection ("new likes" in the app).
type AdmirerView struct {
	FromUser  string      `json:"fromUser"`
	Type      string      `json:"type"`
	CreatedAt string      `json:"createdAt"`
	Sender    UserSummary `json:"sender"`
}
