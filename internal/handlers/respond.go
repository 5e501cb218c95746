package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shareish/shareish/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// serviceErrorMapping pairs a service sentinel with its HTTP translation.
type serviceErrorMapping struct {
	err     error
	status  int
	message string
}

var serviceErrorMappings = []serviceErrorMapping{
	{services.ErrUserNotFound, http.StatusNotFound, "User not found."},
	{services.ErrEmailTaken, http.StatusBadRequest, "Email already in use."},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."},
	{services.ErrPasswordTooLong, http.StatusBadRequest, "Password is too long."},
	{services.ErrInvalidDay, http.StatusBadRequest, "Invalid availability day."},
	{services.ErrCannotFriendSelf, http.StatusForbidden, "Cannot add yourself as a friend."},
	{services.ErrAlreadyFriends, http.StatusForbidden, "Cannot add someone who is already a friend."},
	{services.ErrNoPendingRequest, http.StatusBadRequest, "No pending friend request found."},
	{services.ErrNoFriendship, http.StatusBadRequest, "No friendship found."},
	{services.ErrNotFriend, http.StatusForbidden, "Not your friend!"},
	{services.ErrShareableNotOwned, http.StatusForbidden, "You do not own a shareable with that ID."},
	{services.ErrInvalidShareable, http.StatusBadRequest, "Description and a type of giving or requesting are required."},
}

// writeServiceError is the single translation point from service failures to
// HTTP responses. Anything unmapped is a 500 with a generic body; internals
// go to the log, never to the client.
func writeServiceError(w http.ResponseWriter, err error) {
	for _, m := range serviceErrorMappings {
		if errors.Is(err, m.err) {
			writeError(w, m.status, m.message)
			return
		}
	}
	log.Printf("Unhandled service error: %v", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
