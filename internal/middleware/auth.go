package middleware

import (
	"net/http"
	"strings"

	"github.com/shareish/shareish/internal/handlers"
	"github.com/shareish/shareish/internal/services"
)

// Authenticator verifies the Authorization token and attaches the account id
// to the request context.
type Authenticator struct {
	tokens services.TokenServiceInterface
}

func NewAuthenticator(tokens services.TokenServiceInterface) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Require rejects requests without a valid token. The header may carry the
// raw token or a "Bearer " prefix; both are accepted.
func (a *Authenticator) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("Authorization")
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
		if raw == "" {
			unauthorized(w)
			return
		}

		accountID, err := a.tokens.Verify(raw)
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := handlers.SetAccountInContext(r.Context(), accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Authentication required"}`))
}
