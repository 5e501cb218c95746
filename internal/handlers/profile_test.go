package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/shareish/shareish/internal/models"
	"github.com/shareish/shareish/internal/services"
	"github.com/shareish/shareish/internal/testutil"
)

func authedRequest(req *http.Request, accountID uuid.UUID) *http.Request {
	return req.WithContext(SetAccountInContext(req.Context(), accountID))
}

func TestProfileHandler_GetMe(t *testing.T) {
	accountID := uuid.New()
	friendID := uuid.New()
	pendingID := uuid.New()

	users := &mockUserService{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{ID: id, Email: "ada@example.com", FirstName: "Ada"}, nil
		},
	}
	friends := &mockFriendService{
		FriendIDsFunc: func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{friendID}, nil
		},
		PendingRequesterIDsFunc: func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
			return []uuid.UUID{pendingID}, nil
		},
	}
	shareables := &mockShareableService{
		ListByOwnerFunc: func(ctx context.Context, ownerID uuid.UUID) ([]models.Shareable, error) {
			return []models.Shareable{{ID: uuid.New(), OwnerID: ownerID, Description: "Ladder"}}, nil
		},
	}
	handler := NewProfileHandler(users, friends, shareables)

	req := authedRequest(testutil.NewTestRequest("GET", "/api/me", nil), accountID)
	rr := httptest.NewRecorder()
	handler.GetMe(rr, req)

	testutil.AssertStatusCode(t, rr, 200)
	body := testutil.ParseJSONResponse(t, rr.Body.Bytes())
	if body["email"] != "ada@example.com" {
		t.Fatalf("unexpected body: %v", body)
	}
	if friendsList, ok := body["friends"].([]interface{}); !ok || len(friendsList) != 1 {
		t.Fatalf("expected one friend id, got %v", body["friends"])
	}
	if pending, ok := body["pendingFriends"].([]interface{}); !ok || len(pending) != 1 {
		t.Fatalf("expected one pending id, got %v", body["pendingFriends"])
	}
	if items, ok := body["shareables"].([]interface{}); !ok || len(items) != 1 {
		t.Fatalf("expected shareables embedded, got %v", body["shareables"])
	}
	if _, present := body["passwordHash"]; present {
		t.Fatal("password hash must never serialize")
	}
}

func TestProfileHandler_GetMe_Unauthenticated(t *testing.T) {
	handler := NewProfileHandler(&mockUserService{}, &mockFriendService{}, &mockShareableService{})

	req := testutil.NewTestRequest("GET", "/api/me", nil)
	rr := httptest.NewRecorder()
	handler.GetMe(rr, req)

	testutil.AssertStatusCode(t, rr, 401)
}

func TestProfileHandler_GetMe_Gone(t *testing.T) {
	users := &mockUserService{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			return nil, services.ErrUserNotFound
		},
	}
	handler := NewProfileHandler(users, &mockFriendService{}, &mockShareableService{})

	req := authedRequest(testutil.NewTestRequest("GET", "/api/me", nil), uuid.New())
	rr := httptest.NewRecorder()
	handler.GetMe(rr, req)

	testutil.AssertStatusCode(t, rr, 404)
}

func TestProfileHandler_UpdateMe_PassesPatch(t *testing.T) {
	accountID := uuid.New()
	var gotPatch models.UpdateProfileParams
	users := &mockUserService{
		UpdateProfileFunc: func(ctx context.Context, userID uuid.UUID, patch models.UpdateProfileParams) (*models.User, error) {
			gotPatch = patch
			return &models.User{ID: userID, FirstName: *patch.FirstName}, nil
		},
	}
	handler := NewProfileHandler(users, &mockFriendService{}, &mockShareableService{})

	req := authedRequest(testutil.NewTestRequestWithJSON(t, "PUT", "/api/me", map[string]interface{}{
		"firstName": "Grace",
		"friends":   []string{uuid.New().String()},
	}), accountID)
	rr := httptest.NewRecorder()
	handler.UpdateMe(rr, req)

	testutil.AssertStatusCode(t, rr, 200)
	if gotPatch.FirstName == nil || *gotPatch.FirstName != "Grace" {
		t.Fatalf("expected firstName in patch, got %+v", gotPatch)
	}
	// The patch type has no relationship fields, so the friends key is
	// silently dropped.
	testutil.AssertJSONContains(t, rr.Body.Bytes(), "firstName", "Grace")
}

func TestProfileHandler_UpdateMe_InvalidDay(t *testing.T) {
	users := &mockUserService{
		UpdateProfileFunc: func(ctx context.Context, userID uuid.UUID, patch models.UpdateProfileParams) (*models.User, error) {
			return nil, services.ErrInvalidDay
		},
	}
	handler := NewProfileHandler(users, &mockFriendService{}, &mockShareableService{})

	req := authedRequest(testutil.NewTestRequestWithJSON(t, "PUT", "/api/me", map[string]interface{}{
		"availability": map[string]interface{}{"days": []string{"funday"}},
	}), uuid.New())
	rr := httptest.NewRecorder()
	handler.UpdateMe(rr, req)

	testutil.AssertStatusCode(t, rr, 400)
}

func TestProfileHandler_DeleteMe(t *testing.T) {
	accountID := uuid.New()
	deleted := false
	users := &mockUserService{
		DeleteFunc: func(ctx context.Context, userID uuid.UUID) error {
			if userID != accountID {
				t.Fatalf("expected delete for %v, got %v", accountID, userID)
			}
			deleted = true
			return nil
		},
	}
	handler := NewProfileHandler(users, &mockFriendService{}, &mockShareableService{})

	req := authedRequest(testutil.NewTestRequest("DELETE", "/api/me", nil), accountID)
	rr := httptest.NewRecorder()
	handler.DeleteMe(rr, req)

	testutil.AssertStatusCode(t, rr, 200)
	testutil.AssertJSONContains(t, rr.Body.Bytes(), "deleted", true)
	if !deleted {
		t.Fatal("expected the user service delete to run")
	}
}
