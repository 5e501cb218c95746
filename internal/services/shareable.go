package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shareish/shareish/internal/models"
)

var (
	ErrShareableNotOwned = errors.New("no shareable with that id owned by caller")
	ErrInvalidShareable  = errors.New("shareable requires a description and a valid type")
)

const shareableColumns = `id, owner_id, description, type, urgent, expiration, created_at, updated_at`

type ShareableService struct {
	db DB
}

func NewShareableService(db DB) *ShareableService {
	return &ShareableService{db: db}
}

func (s *ShareableService) Create(ctx context.Context, ownerID uuid.UUID, params models.CreateShareableParams) (*models.Shareable, error) {
	params.Description = strings.TrimSpace(params.Description)
	if params.Description == "" || !params.Type.Valid() {
		return nil, ErrInvalidShareable
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO shareables (owner_id, description, type, urgent, expiration)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+shareableColumns,
		ownerID, params.Description, params.Type, params.Urgent, params.Expiration,
	)

	shareable, err := scanShareable(row)
	if err != nil {
		return nil, fmt.Errorf("creating shareable: %w", err)
	}
	return shareable, nil
}

func (s *ShareableService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shareable, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+shareableColumns+` FROM shareables WHERE owner_id = $1 ORDER BY created_at`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing shareables: %w", err)
	}
	defer rows.Close()

	shareables := []models.Shareable{}
	for rows.Next() {
		var item models.Shareable
		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Description, &item.Type,
			&item.Urgent, &item.Expiration, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning shareable: %w", err)
		}
		shareables = append(shareables, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading shareables: %w", err)
	}
	return shareables, nil
}

// Update patches a shareable, but only if ownerID owns it. The ownership
// check and the write are the same statement.
func (s *ShareableService) Update(ctx context.Context, ownerID, shareableID uuid.UUID, patch models.UpdateShareableParams) (*models.Shareable, error) {
	setClauses := []string{}
	args := []any{}
	idx := 1

	addClause := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.Description != nil {
		trimmed := strings.TrimSpace(*patch.Description)
		if trimmed == "" {
			return nil, ErrInvalidShareable
		}
		addClause("description", trimmed)
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, ErrInvalidShareable
		}
		addClause("type", *patch.Type)
	}
	if patch.Urgent != nil {
		addClause("urgent", *patch.Urgent)
	}
	if patch.Expiration != nil {
		addClause("expiration", *patch.Expiration)
	}

	if len(setClauses) == 0 {
		return s.getOwned(ctx, ownerID, shareableID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, shareableID, ownerID)
	query := fmt.Sprintf(
		"UPDATE shareables SET %s WHERE id = $%d AND owner_id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), idx, idx+1, shareableColumns,
	)

	shareable, err := scanShareable(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrShareableNotOwned
	}
	if err != nil {
		return nil, fmt.Errorf("updating shareable: %w", err)
	}
	return shareable, nil
}

func (s *ShareableService) Delete(ctx context.Context, ownerID, shareableID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		"DELETE FROM shareables WHERE id = $1 AND owner_id = $2",
		shareableID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("deleting shareable: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrShareableNotOwned
	}
	return nil
}

// Feed returns the shareables owned by userID's friends, slimmed to the feed
// projection. The caller's own items never qualify: the friendship pair rows
// exclude self-friendship by constraint.
func (s *ShareableService) Feed(ctx context.Context, userID uuid.UUID) ([]models.FeedItem, error) {
	rows, err := s.db.Query(ctx,
		`SELECT s.id, s.type, s.urgent, s.expiration, u.first_name
		 FROM shareables s
		 JOIN users u ON u.id = s.owner_id
		 WHERE s.owner_id IN (
		   SELECT CASE WHEN f.requester_id = $1 THEN f.recipient_id ELSE f.requester_id END
		   FROM friendships f
		   WHERE f.status = 'accepted' AND (f.requester_id = $1 OR f.recipient_id = $1)
		 )`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("loading feed: %w", err)
	}
	defer rows.Close()

	items := []models.FeedItem{}
	for rows.Next() {
		var item models.FeedItem
		if err := rows.Scan(&item.ID, &item.Type, &item.Urgent, &item.Expiration, &item.Owner.FirstName); err != nil {
			return nil, fmt.Errorf("scanning feed item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	return items, nil
}

func (s *ShareableService) getOwned(ctx context.Context, ownerID, shareableID uuid.UUID) (*models.Shareable, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+shareableColumns+` FROM shareables WHERE id = $1 AND owner_id = $2`,
		shareableID, ownerID,
	)
	shareable, err := scanShareable(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrShareableNotOwned
	}
	if err != nil {
		return nil, fmt.Errorf("getting shareable: %w", err)
	}
	return shareable, nil
}

func scanShareable(row Row) (*models.Shareable, error) {
	shareable := &models.Shareable{}
	err := row.Scan(
		&shareable.ID,
		&shareable.OwnerID,
		&shareable.Description,
		&shareable.Type,
		&shareable.Urgent,
		&shareable.Expiration,
		&shareable.CreatedAt,
		&shareable.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return shareable, nil
}
