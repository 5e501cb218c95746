package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Weekday is a lowercase day name used in availability schedules.
type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

var weekdays = map[Weekday]struct{}{
	Sunday: {}, Monday: {}, Tuesday: {}, Wednesday: {},
	Thursday: {}, Friday: {}, Saturday: {},
}

func (w Weekday) Valid() bool {
	_, ok := weekdays[w]
	return ok
}

// ValidateDays rejects any day name outside the weekday enum.
func ValidateDays(days []Weekday) error {
	for _, d := range days {
		if !d.Valid() {
			return fmt.Errorf("invalid availability day: %q", d)
		}
	}
	return nil
}

type Availability struct {
	Notes string    `json:"notes,omitempty"`
	Days  []Weekday `json:"days"`
}

// User is both the account identity (email + password hash) and the public
// profile. The password hash never serializes.
type User struct {
	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	PictureURL   *string      `json:"pictureUrl,omitempty"`
	Contact      *string      `json:"contact,omitempty"`
	Availability Availability `json:"availability"`
	// Friends and PendingFriends are derived from friendship rows, never
	// stored on the user record and never writable through a profile patch.
	Friends        []uuid.UUID `json:"friends"`
	PendingFriends []uuid.UUID `json:"pendingFriends"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// UpdateProfileParams is the allow-list of profile fields a user may patch.
// Relationship arrays are not representable here by design of the type.
type UpdateProfileParams struct {
	FirstName    *string       `json:"firstName"`
	LastName     *string       `json:"lastName"`
	PictureURL   *string       `json:"pictureUrl"`
	Contact      *string       `json:"contact"`
	Availability *Availability `json:"availability"`
}

// FriendProfile is the projection returned by the friend list.
type FriendProfile struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	PictureURL *string   `json:"pictureUrl,omitempty"`
}
