package models

import (
	"time"

	"github.com/google/uuid"
)

type ShareableType string

const (
	ShareableTypeGiving     ShareableType = "giving"
	ShareableTypeRequesting ShareableType = "requesting"
)

func (t ShareableType) Valid() bool {
	return t == ShareableTypeGiving || t == ShareableTypeRequesting
}

// Shareable is an item a user is giving away or requesting from friends.
type Shareable struct {
	ID          uuid.UUID     `json:"id"`
	OwnerID     uuid.UUID     `json:"owner"`
	Description string        `json:"description"`
	Type        ShareableType `json:"type"`
	Urgent      bool          `json:"urgent"`
	Expiration  *time.Time    `json:"expiration,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type CreateShareableParams struct {
	Description string        `json:"description"`
	Type        ShareableType `json:"type"`
	Urgent      bool          `json:"urgent"`
	Expiration  *time.Time    `json:"expiration"`
}

// UpdateShareableParams patches a shareable; nil fields are left untouched.
// Ownership is never patchable.
type UpdateShareableParams struct {
	Description *string        `json:"description"`
	Type        *ShareableType `json:"type"`
	Urgent      *bool          `json:"urgent"`
	Expiration  *time.Time     `json:"expiration"`
}

// FeedOwner is the slim owner projection embedded in feed entries.
type FeedOwner struct {
	FirstName string `json:"firstName"`
}

// FeedItem is a friend's shareable as it appears in the feed.
type FeedItem struct {
	ID         uuid.UUID     `json:"id"`
	Type       ShareableType `json:"type"`
	Urgent     bool          `json:"urgent"`
	Expiration *time.Time    `json:"expiration,omitempty"`
	Owner      FeedOwner     `json:"owner"`
}
