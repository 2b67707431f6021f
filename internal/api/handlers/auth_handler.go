package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/isdelr/mini-social-be/internal/auth"
	"github.com/isdelr/mini-social-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles HTTP requests for signup, login and logout.
type AuthHandler struct {
	service services.IdentityServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.IdentityServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration. The new user is logged in right away.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.SignUp(payload.Name, payload.Email, payload.Password, payload.Avatar)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondError(w, err)
		return
	}

	token, err := auth.GenerateJWT(session)
	if err != nil {
		log.Error().Err(err).Str("user_id", session.ID).Msg("Failed to generate JWT")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	setTokenCookie(w, token)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token":   token,
		"session": session,
	})
}

// Login handles user authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.LogIn(payload.Email, payload.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := auth.GenerateJWT(session)
	if err != nil {
		log.Error().Err(err).Str("user_id", session.ID).Msg("Failed to generate JWT")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	setTokenCookie(w, token)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":   token,
		"session": session,
	})
}

// Logout clears the persisted session and the token cookie. Idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.LogOut(); err != nil {
		log.Error().Err(err).Msg("Failed to clear session")
		respondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())
	if session == nil {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUserByID(session.ID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", session.ID).Msg("User from token not found in store")
		respondError(w, err)
		return
	}

	// sanitize
	user.Password = ""

	respondJSON(w, http.StatusOK, user)
}

// setTokenCookie attaches the session token the same way for signup and login.
func setTokenCookie(w http.ResponseWriter, token string) {
	// Set Secure flag based on environment.
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}
