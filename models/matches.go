package models

type Match struct {
	User1ID           string `dynamodbav:"user1Id" json:"user1Id"` // ✅ Partition Key (canonical: smaller id)
	User2ID           string `dynamodbav:"user2Id" json:"user2Id"` // ✅ Sort Key
	MatchID           string `dynamodbav:"matchId" json:"matchId"` // Unique matchId
	Status            string `dynamodbav:"status" json:"status"`   // pending, matched, unmatched
	InitiatedBy       string `dynamodbav:"initiatedBy" json:"initiatedBy"`
	LastInteractionAt string `dynamodbav:"lastInteractionAt,omitempty" json:"lastInteractionAt,omitempty"`
	CreatedAt         string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt         string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CanonicalPair orders an unordered user pair deterministically so that
// (A,B) and (B,A) collide on the same storage key. The smaller id always
// comes first. Every lookup and insert goes through this function; the
// ordering is never hidden inside a persistence hook.
func CanonicalPair(userA, userB string) (user1, user2 string) {
	if userA > userB {
		return userB, userA
	}
	return userA, userB
}

// OtherUser returns the participant that is not the given user, and whether
// the given user is part of the match at all.
func (m Match) OtherUser(userID string) (string, bool) {
	switch userID {
	case m.User1ID:
		return m.User2ID, true
	case m.User2ID:
		return m.User1ID, true
	}
	return "", false
}

// MatchesTable is the DynamoDB table name for user matches
const MatchesTable = "Matches"

// ✅ Define GSI for querying matches where the user holds the sort-key side
const User2Index = "user2Id-index"
