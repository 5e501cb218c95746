package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shareish/shareish/internal/models"
	"github.com/shareish/shareish/internal/services"
)

// FriendHandler drives the friendship lifecycle: request, confirm, list,
// view, unfriend.
type FriendHandler struct {
	users      services.UserServiceInterface
	friends    services.FriendServiceInterface
	shareables services.ShareableServiceInterface
	emails     services.EmailServiceInterface
}

func NewFriendHandler(users services.UserServiceInterface, friends services.FriendServiceInterface, shareables services.ShareableServiceInterface, emails services.EmailServiceInterface) *FriendHandler {
	return &FriendHandler{users: users, friends: friends, shareables: shareables, emails: emails}
}

type friendRequestBody struct {
	Email string `json:"email"`
}

type friendListResponse struct {
	Friends        []models.FriendProfile `json:"friends"`
	PendingFriends []models.FriendProfile `json:"pendingFriends"`
}

// SendRequest records a pending friend request against the user identified
// by email. Re-sending an already pending request is a no-op that still
// reports success.
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var body friendRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	recipient, err := h.friends.SendRequest(r.Context(), accountID, body.Email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if requester, err := h.users.GetByID(r.Context(), accountID); err == nil {
		name := strings.TrimSpace(requester.FirstName + " " + requester.LastName)
		h.emails.SendFriendRequest(recipient.Email, recipient.FirstName, name)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"requestReceived": true})
}

// Confirm accepts a pending request from the user named in the path and
// returns the caller's refreshed profile.
func (h *FriendHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requesterID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	if err := h.friends.Confirm(r.Context(), accountID, requesterID); err != nil {
		writeServiceError(w, err)
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

	writeJSON(w, http.StatusOK, user)
}

// List returns confirmed friends and incoming pending requests as slim
// profiles for display.
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friends, err := h.friends.ListFriends(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pending, err := h.friends.ListPending(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if friends == nil {
		friends = []models.FriendProfile{}
	}
	if pending == nil {
		pending = []models.FriendProfile{}
	}

	writeJSON(w, http.StatusOK, friendListResponse{Friends: friends, PendingFriends: pending})
}

// GetFriend returns a confirmed friend's profile with their shareables.
// Pending requesters and strangers are refused alike.
func (h *FriendHandler) GetFriend(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	isFriend, err := h.friends.IsFriend(r.Context(), accountID, friendID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !isFriend {
		writeServiceError(w, services.ErrNotFriend)
		return
	}

	friend, err := h.users.GetByID(r.Context(), friendID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := attachRelationships(r.Context(), h.friends, friend); err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := h.shareables.ListByOwner(r.Context(), friendID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{User: friend, Shareables: items})
}

// Unfriend deletes a confirmed friendship. Either side can sever it.
func (h *FriendHandler) Unfriend(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid friend ID")
		return
	}

	if err := h.friends.Unfriend(r.Context(), accountID, friendID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
