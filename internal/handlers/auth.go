package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shareish/shareish/internal/models"
	"github.com/shareish/shareish/internal/services"
)

// AuthHandler handles signup, signin and token verification.
type AuthHandler struct {
	users  services.UserServiceInterface
	auth   services.AuthServiceInterface
	tokens services.TokenServiceInterface
	emails services.EmailServiceInterface
}

func NewAuthHandler(users services.UserServiceInterface, auth services.AuthServiceInterface, tokens services.TokenServiceInterface, emails services.EmailServiceInterface) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, tokens: tokens, emails: emails}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// Signup creates an account and returns a signed token for it.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, email, and password must be provided")
		return
	}

	hash, err := h.auth.HashPassword(req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	user, err := h.users.Create(r.Context(), models.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.emails.SendWelcome(user.Email, user.FirstName)

	writeJSON(w, http.StatusOK, authResponse{Token: token, Name: user.FirstName})
}

// Signin checks credentials and returns a signed token. Unknown email and
// wrong password are indistinguishable to the caller.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	if !h.auth.VerifyPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, Name: user.FirstName})
}

// Verify confirms the presented token is valid. The auth middleware has
// already done the verification by the time this runs.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}
