package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/shareish/shareish/internal/models"
)

type mockUserService struct {
	CreateFunc        func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, userID uuid.UUID, patch models.UpdateProfileParams) (*models.User, error)
	DeleteFunc        func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &models.User{ID: uuid.New(), Email: params.Email, FirstName: params.FirstName}, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &models.User{ID: id}, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return &models.User{ID: uuid.New(), Email: email}, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch models.UpdateProfileParams) (*models.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, patch)
	}
	return &models.User{ID: userID}, nil
}

func (m *mockUserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID)
	}
	return nil
}

type mockAuthService struct {
	HashPasswordFunc   func(password string) (string, error)
	VerifyPasswordFunc func(hash, password string) bool
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return hash == "hashed_"+password
}

type mockTokenService struct {
	SignFunc   func(accountID uuid.UUID) (string, error)
	VerifyFunc func(token string) (uuid.UUID, error)
}

func (m *mockTokenService) Sign(accountID uuid.UUID) (string, error) {
	if m.SignFunc != nil {
		return m.SignFunc(accountID)
	}
	return "test_token", nil
}

func (m *mockTokenService) Verify(token string) (uuid.UUID, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	return uuid.Nil, nil
}

type mockFriendService struct {
	SendRequestFunc         func(ctx context.Context, userID uuid.UUID, recipientEmail string) (*models.User, error)
	ConfirmFunc             func(ctx context.Context, userID, requesterID uuid.UUID) error
	UnfriendFunc            func(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriendsFunc         func(ctx context.Context, userID uuid.UUID) ([]models.FriendProfile, error)
	ListPendingFunc         func(ctx context.Context, userID uuid.UUID) ([]models.FriendProfile, error)
	FriendIDsFunc           func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	PendingRequesterIDsFunc func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	IsFriendFunc            func(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

func (m *mockFriendService) SendRequest(ctx context.Context, userID uuid.UUID, recipientEmail string) (*models.User, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, userID, recipientEmail)
	}
	return &models.User{ID: uuid.New(), Email: recipientEmail}, nil
}

func (m *mockFriendService) Confirm(ctx context.Context, userID, requesterID uuid.UUID) error {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, userID, requesterID)
	}
	return nil
}

func (m *mockFriendService) Unfriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if m.UnfriendFunc != nil {
		return m.UnfriendFunc(ctx, userID, friendID)
	}
	return nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendProfile, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return []models.FriendProfile{}, nil
}

func (m *mockFriendService) ListPending(ctx context.Context, userID uuid.UUID) ([]models.FriendProfile, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, userID)
	}
	return []models.FriendProfile{}, nil
}

func (m *mockFriendService) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.FriendIDsFunc != nil {
		return m.FriendIDsFunc(ctx, userID)
	}
	return []uuid.UUID{}, nil
}

func (m *mockFriendService) PendingRequesterIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.PendingRequesterIDsFunc != nil {
		return m.PendingRequesterIDsFunc(ctx, userID)
	}
	return []uuid.UUID{}, nil
}

func (m *mockFriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	if m.IsFriendFunc != nil {
		return m.IsFriendFunc(ctx, userID, otherUserID)
	}
	return false, nil
}

type mockShareableService struct {
	CreateFunc      func(ctx context.Context, ownerID uuid.UUID, params models.CreateShareableParams) (*models.Shareable, error)
	ListByOwnerFunc func(ctx context.Context, ownerID uuid.UUID) ([]models.Shareable, error)
	UpdateFunc      func(ctx context.Context, ownerID, shareableID uuid.UUID, patch models.UpdateShareableParams) (*models.Shareable, error)
	DeleteFunc      func(ctx context.Context, ownerID, shareableID uuid.UUID) error
	FeedFunc        func(ctx context.Context, userID uuid.UUID) ([]models.FeedItem, error)
}

func (m *mockShareableService) Create(ctx context.Context, ownerID uuid.UUID, params models.CreateShareableParams) (*models.Shareable, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ownerID, params)
	}
	return &models.Shareable{ID: uuid.New(), OwnerID: ownerID, Description: params.Description, Type: params.Type}, nil
}

func (m *mockShareableService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shareable, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	return []models.Shareable{}, nil
}

func (m *mockShareableService) Update(ctx context.Context, ownerID, shareableID uuid.UUID, patch models.UpdateShareableParams) (*models.Shareable, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ownerID, shareableID, patch)
	}
	return &models.Shareable{ID: shareableID, OwnerID: ownerID}, nil
}

func (m *mockShareableService) Delete(ctx context.Context, ownerID, shareableID uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, shareableID)
	}
	return nil
}

func (m *mockShareableService) Feed(ctx context.Context, userID uuid.UUID) ([]models.FeedItem, error) {
	if m.FeedFunc != nil {
		return m.FeedFunc(ctx, userID)
	}
	return []models.FeedItem{}, nil
}

type mockEmailService struct {
	welcomes       []string
	friendRequests []string
}

func (m *mockEmailService) SendWelcome(email, firstName string) {
	m.welcomes = append(m.welcomes, email)
}

func (m *mockEmailService) SendFriendRequest(recipientEmail, recipientFirstName, requesterName string) {
	m.friendRequests = append(m.friendRequests, recipientEmail)
}
