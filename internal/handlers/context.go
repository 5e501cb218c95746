package handlers

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const accountContextKey contextKey = "account_id"

// SetAccountInContext attaches the authenticated account id to the request
// context. The middleware verifies the token; handlers load whatever user
// state they actually need.
func SetAccountInContext(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, accountContextKey, accountID)
}

// GetAccountFromContext returns the authenticated account id, or false when
// the request never passed the auth middleware.
func GetAccountFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(accountContextKey).(uuid.UUID)
	return id, ok
}
