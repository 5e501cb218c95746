package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/shareish/shareish/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
	ErrInvalidDay   = errors.New("invalid availability day")
)

const userColumns = `id, email, password_hash, first_name, last_name, picture_url, contact,
	        availability_notes, availability_days, created_at, updated_at`

type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

// Create inserts the account and profile as one row. The unique email index
// is the only duplicate check, so there is no check-then-create window.
func (s *UserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		strings.ToLower(strings.TrimSpace(params.Email)), params.PasswordHash, params.FirstName, params.LastName,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by id: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`,
		strings.TrimSpace(email),
	)
	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the allow-listed patch fields. Nil fields are left
// untouched; relationship arrays are not part of the patch type at all.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch models.UpdateProfileParams) (*models.User, error) {
	setClauses := []string{}
	args := []any{}
	idx := 1

	addClause := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if patch.FirstName != nil {
		addClause("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		addClause("last_name", *patch.LastName)
	}
	if patch.PictureURL != nil {
		addClause("picture_url", *patch.PictureURL)
	}
	if patch.Contact != nil {
		addClause("contact", *patch.Contact)
	}
	if patch.Availability != nil {
		if err := models.ValidateDays(patch.Availability.Days); err != nil {
			return nil, ErrInvalidDay
		}
		addClause("availability_notes", patch.Availability.Notes)
		addClause("availability_days", daysToStrings(patch.Availability.Days))
	}

	if len(setClauses) == 0 {
		return s.GetByID(ctx, userID)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, userID)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(setClauses, ", "), idx, userColumns,
	)

	user, err := scanUser(s.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return user, nil
}

// Delete removes the user; friendships and shareables go with it via the
// foreign key cascade.
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	result, err := s.db.Exec(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func scanUser(row Row) (*models.User, error) {
	user := &models.User{}
	var notes *string
	var days []string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.PictureURL,
		&user.Contact,
		&notes,
		&days,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if notes != nil {
		user.Availability.Notes = *notes
	}
	user.Availability.Days = stringsToDays(days)
	user.Friends = []uuid.UUID{}
	user.PendingFriends = []uuid.UUID{}
	return user, nil
}

func daysToStrings(days []models.Weekday) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = string(d)
	}
	return out
}

func stringsToDays(days []string) []models.Weekday {
	out := make([]models.Weekday, len(days))
	for i, d := range days {
		out[i] = models.Weekday(d)
	}
	return out
}
