package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/shareish/shareish/internal/models"
)

// UserServiceInterface defines the contract for account and profile operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch models.UpdateProfileParams) (*models.User, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// AuthServiceInterface defines the contract for password handling.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
}

// TokenServiceInterface defines the contract for bearer token handling.
type TokenServiceInterface interface {
	Sign(accountID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}

// FriendServiceInterface defines the contract for the friendship lifecycle.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, userID uuid.UUID, recipientEmail string) (*models.User, error)
	Confirm(ctx context.Context, userID, requesterID uuid.UUID) error
	Unfriend(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendProfile, error)
	ListPending(ctx context.Context, userID uuid.UUID) ([]models.FriendProfile, error)
	FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	PendingRequesterIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

// ShareableServiceInterface defines the contract for shareable operations.
type ShareableServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, params models.CreateShareableParams) (*models.Shareable, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shareable, error)
	Update(ctx context.Context, ownerID, shareableID uuid.UUID, patch models.UpdateShareableParams) (*models.Shareable, error)
	Delete(ctx context.Context, ownerID, shareableID uuid.UUID) error
	Feed(ctx context.Context, userID uuid.UUID) ([]models.FeedItem, error)
}

// EmailServiceInterface defines the contract for outbound notifications.
type EmailServiceInterface interface {
	SendWelcome(email, firstName string)
	SendFriendRequest(recipientEmail, recipientFirstName, requesterName string)
}
