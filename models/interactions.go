package models

type Interaction struct {
	FromUser  string `dynamodbav:"fromUser" json:"fromUser"` // ✅ Partition Key
	ToUser    string `dynamodbav:"toUser" json:"toUser"`     // ✅ Sort Key
	Type      string `dynamodbav:"type" json:"type"`         // like, dislike, superlike
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// IsPositive reports whether the interaction can participate in a match.
// A dislike never triggers a match, even if the other side liked.
func (i Interaction) IsPositive() bool {
	return IsPositiveInteractionType(i.Type)
}

func IsPositiveInteractionType(interactionType string) bool {
	return interactionType == InteractionTypeLike || interactionType == InteractionTypeSuperlike
}

// IsValidInteractionType reports whether the type is one of the three
// allowed directional actions.
func IsValidInteractionType(interactionType string) bool {
	switch interactionType {
	case InteractionTypeLike, InteractionTypeDislike, InteractionTypeSuperlike:
		return true
	}
	return false
}

// ✅ Define table name
const InteractionsTable = "Interactions"

// ✅ Define GSI for querying interactions where the user is the receiver
const ToUserIndex = "toUser-index"
