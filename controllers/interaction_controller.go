package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"pookiey_server/middleware"
	"pookiey_server/services"
)

// Interactor is the slice of InteractionService the controller needs.
type Interactor interface {
	Interact(ctx context.Context, fromUser, toUser, interactionType string) (*services.InteractionResult, error)
}

// InteractionController struct
type InteractionController struct {
	Interactions Interactor
}

// NewInteractionController initializes the controller
func NewInteractionController(service Interactor) *InteractionController {
	return &InteractionController{Interactions: service}
}

// HandleInteract - record a directional action and report the outcome:
// already interacted, paywall, plain interaction, or match.
func (c *InteractionController) HandleInteract(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ToUser string `json:"toUser"`
		Type   string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if request.ToUser == "" || request.Type == "" {
		writeError(w, http.StatusBadRequest, "toUser and type are required")
		return
	}

	fromUser := middleware.UserID(r)
	result, err := c.Interactions.Interact(r.Context(), fromUser, request.ToUser, request.Type)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfInteraction):
			writeError(w, http.StatusBadRequest, "You cannot interact with yourself")
		case errors.Is(err, services.ErrInvalidInteractionType):
			writeError(w, http.StatusBadRequest, "Invalid interaction type")
		case errors.Is(err, services.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrConflictRetryExhausted):
			writeError(w, http.StatusConflict, "Interaction conflicted, please retry")
		default:
			log.Printf("interaction %s -> %s failed: %v", fromUser, request.ToUser, err)
			writeError(w, http.StatusInternalServerError, "Interaction failed")
		}
		return
	}

	if result.Denied() {
		writeJSON(w, http.StatusPaymentRequired, map[string]interface{}{
			"allowed":     false,
			"showPaywall": true,
			"limit":       result.Quota.Limit,
			"remaining":   result.Quota.Remaining,
		})
		return
	}

	if result.AlreadyInteracted {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"alreadyInteracted": true,
			"interaction":       result.Interaction,
		})
		return
	}

	if result.IsMatch {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"isMatch": true,
			"match":   result.Match,
			"user1":   result.User1,
			"user2":   result.User2,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"isMatch":     false,
		"interaction": result.Interaction,
	})
}
