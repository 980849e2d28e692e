package services

import "errors"

var (
	// ErrSelfInteraction - a user cannot interact with themselves.
	ErrSelfInteraction = errors.New("cannot interact with yourself")

	// ErrInvalidInteractionType - type must be like, dislike or superlike.
	ErrInvalidInteractionType = errors.New("invalid interaction type")

	// ErrUserNotFound - unknown user id; distinct from validation errors.
	ErrUserNotFound = errors.New("user not found")

	// ErrLocationRequired - discovery requires coordinates on file.
	ErrLocationRequired = errors.New("location required")

	// ErrMatchNotFound - no match exists for the pair.
	ErrMatchNotFound = errors.New("match not found")

	// ErrConflictRetryExhausted - persistent write conflicts; the caller
	// should retry the request.
	ErrConflictRetryExhausted = errors.New("interaction conflicted with concurrent writes, retry")
)
