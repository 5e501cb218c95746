package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/shareish/shareish/internal/models"
	"github.com/shareish/shareish/internal/services"
)

// ProfileHandler serves the authenticated user's own profile.
type ProfileHandler struct {
	users      services.UserServiceInterface
	friends    services.FriendServiceInterface
	shareables services.ShareableServiceInterface
}

func NewProfileHandler(users services.UserServiceInterface, friends services.FriendServiceInterface, shareables services.ShareableServiceInterface) *ProfileHandler {
	return &ProfileHandler{users: users, friends: friends, shareables: shareables}
}

type profileResponse struct {
	*models.User
	Shareables []models.Shareable `json:"shareables"`
}

// GetMe returns the full profile: user fields, friend and pending-request
// ids, and the user's own shareables.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.users.GetByID(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := attachRelationships(r.Context(), h.friends, user); err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := h.shareables.ListByOwner(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{User: user, Shareables: items})
}

// UpdateMe applies a partial update to the profile. Only whitelisted fields
// can change; relationship arrays are not part of the patch shape at all.
func (h *ProfileHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var patch models.UpdateProfileParams
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), accountID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := attachRelationships(r.Context(), h.friends, user); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DeleteMe removes the account. Shareables and friendships go with it via
// foreign key cascade.
func (h *ProfileHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.users.Delete(r.Context(), accountID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// attachRelationships fills the friend and pending-request id arrays on a
// user loaded from the users table, where they do not live.
func attachRelationships(ctx context.Context, friends services.FriendServiceInterface, user *models.User) error {
	friendIDs, err := friends.FriendIDs(ctx, user.ID)
	if err != nil {
		return err
	}
	pendingIDs, err := friends.PendingRequesterIDs(ctx, user.ID)
	if err != nil {
		return err
	}
	if friendIDs == nil {
		friendIDs = []uuid.UUID{}
	}
	if pendingIDs == nil {
		pendingIDs = []uuid.UUID{}
	}
	user.Friends = friendIDs
	user.PendingFriends = pendingIDs
	return nil
}
