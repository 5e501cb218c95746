package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shareish/shareish/internal/models"
)

var (
	ErrCannotFriendSelf = errors.New("cannot add yourself as a friend")
	ErrAlreadyFriends   = errors.New("already a friend")
	ErrNoPendingRequest = errors.New("no pending friend request")
	ErrNoFriendship     = errors.New("no friendship found")
	ErrNotFriend        = errors.New("not your friend")
)

type FriendService struct {
	db DB
}

func NewFriendService(db DB) *FriendService {
	return &FriendService{db: db}
}

// SendRequest records a pending friendship from userID toward the user with
// recipientEmail and returns the recipient. Re-sending an already pending
// request is a no-op: one pair row is all that can exist.
func (s *FriendService) SendRequest(ctx context.Context, userID uuid.UUID, recipientEmail string) (*models.User, error) {
	recipient := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, first_name, last_name FROM users WHERE LOWER(email) = LOWER($1)`,
		recipientEmail,
	).Scan(&recipient.ID, &recipient.Email, &recipient.FirstName, &recipient.LastName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving recipient: %w", err)
	}

	if recipient.ID == userID {
		return nil, ErrCannotFriendSelf
	}

	var status models.FriendshipStatus
	err = s.db.QueryRow(ctx,
		`SELECT status FROM friendships
		 WHERE (requester_id = $1 AND recipient_id = $2)
		    OR (requester_id = $2 AND recipient_id = $1)`,
		userID, recipient.ID,
	).Scan(&status)
	if err == nil {
		if status == models.FriendshipStatusAccepted {
			return nil, ErrAlreadyFriends
		}
		// Pending in either direction; nothing to add.
		return recipient, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("checking existing friendship: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO friendships (requester_id, recipient_id, status)
		 VALUES ($1, $2, 'pending')
		 ON CONFLICT DO NOTHING`,
		userID, recipient.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating friend request: %w", err)
	}

	return recipient, nil
}

// Confirm accepts the pending request from requesterID to userID. The status
// flip on the single pair row makes both sides friends at once; there is no
// second document to update and therefore no asymmetric partial state.
func (s *FriendService) Confirm(ctx context.Context, userID, requesterID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`UPDATE friendships SET status = 'accepted'
		 WHERE requester_id = $1 AND recipient_id = $2 AND status = 'pending'`,
		requesterID, userID,
	)
	if err != nil {
		return fmt.Errorf("confirming friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNoPendingRequest
	}
	return nil
}

// Unfriend deletes the accepted pair row regardless of who requested it.
func (s *FriendService) Unfriend(ctx context.Context, userID, friendID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`DELETE FROM friendships
		 WHERE status = 'accepted'
		   AND ((requester_id = $1 AND recipient_id = $2)
		     OR (requester_id = $2 AND recipient_id = $1))`,
		userID, friendID,
	)
	if err != nil {
		return fmt.Errorf("removing friendship: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNoFriendship
	}
	return nil
}

func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendProfile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.picture_url
		 FROM friendships f
		 JOIN users u ON u.id = CASE WHEN f.requester_id = $1 THEN f.recipient_id ELSE f.requester_id END
		 WHERE f.status = 'accepted' AND (f.requester_id = $1 OR f.recipient_id = $1)
		 ORDER BY f.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friends: %w", err)
	}
	defer rows.Close()

	return scanFriendProfiles(rows)
}

func (s *FriendService) ListPending(ctx context.Context, userID uuid.UUID) ([]models.FriendProfile, error) {
	rows, err := s.db.Query(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.picture_url
		 FROM friendships f
		 JOIN users u ON u.id = f.requester_id
		 WHERE f.status = 'pending' AND f.recipient_id = $1
		 ORDER BY f.created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending requests: %w", err)
	}
	defer rows.Close()

	return scanFriendProfiles(rows)
}

// FriendIDs returns the ids of everyone userID holds an accepted friendship
// with, in friendship order.
func (s *FriendService) FriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT CASE WHEN requester_id = $1 THEN recipient_id ELSE requester_id END
		 FROM friendships
		 WHERE status = 'accepted' AND (requester_id = $1 OR recipient_id = $1)
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing friend ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

// PendingRequesterIDs returns the ids of users who have asked to befriend
// userID and are awaiting confirmation.
func (s *FriendService) PendingRequesterIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(ctx,
		`SELECT requester_id FROM friendships
		 WHERE status = 'pending' AND recipient_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending requester ids: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows)
}

func (s *FriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	var isFriend bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE status = 'accepted'
			  AND ((requester_id = $1 AND recipient_id = $2)
			    OR (requester_id = $2 AND recipient_id = $1))
		)`,
		userID, otherUserID,
	).Scan(&isFriend)
	if err != nil {
		return false, fmt.Errorf("checking friendship: %w", err)
	}
	return isFriend, nil
}

func scanFriendProfiles(rows Rows) ([]models.FriendProfile, error) {
	profiles := []models.FriendProfile{}
	for rows.Next() {
		var p models.FriendProfile
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.PictureURL); err != nil {
			return nil, fmt.Errorf("scanning friend profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading friend profiles: %w", err)
	}
	return profiles, nil
}

func scanIDs(rows Rows) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading ids: %w", err)
	}
	return ids, nil
}
