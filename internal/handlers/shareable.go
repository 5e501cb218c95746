package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/shareish/shareish/internal/models"
	"github.com/shareish/shareish/internal/services"
)

// ShareableHandler manages the user's own shareables and the friends feed.
type ShareableHandler struct {
	shareables services.ShareableServiceInterface
}

func NewShareableHandler(shareables services.ShareableServiceInterface) *ShareableHandler {
	return &ShareableHandler{shareables: shareables}
}

// Create adds a shareable owned by the caller.
func (h *ShareableHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var params models.CreateShareableParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.shareables.Create(r.Context(), accountID, params)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// ListOwn returns every shareable the caller owns.
func (h *ShareableHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.shareables.ListByOwner(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Shareable{}
	}

	writeJSON(w, http.StatusOK, items)
}

// Update applies a partial update to a shareable the caller owns. Ownership
// is enforced in the same statement as the update, so a miss never reveals
// whether the id exists.
func (h *ShareableHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	shareableID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shareable ID")
		return
	}

	var patch models.UpdateShareableParams
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.shareables.Update(r.Context(), accountID, shareableID, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete removes a shareable the caller owns.
func (h *ShareableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	shareableID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shareable ID")
		return
	}

	if err := h.shareables.Delete(r.Context(), accountID, shareableID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Feed returns the shareables of confirmed friends, trimmed to what the feed
// page renders. No ordering is promised; the client sorts.
func (h *ShareableHandler) Feed(w http.ResponseWriter, r *http.Request) {
	accountID, ok := GetAccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	items, err := h.shareables.Feed(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.FeedItem{}
	}

	writeJSON(w, http.StatusOK, items)
}
