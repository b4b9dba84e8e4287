package handlers

import (
	"net/http"

	"ratemypic/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and password reset requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Gender   string `json:"gender" validate:"omitempty,oneof=male female other"`
	Age      int    `json:"age" validate:"gte=0,lte=120"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	ResetToken  string `json:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.authService.Register(r.Context(), req.Email, req.Password, req.Gender, req.Age)
	if err != nil {
		respondServiceError(w, err, "Failed to register user")
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Msg("User registered")

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err, "Failed to log in user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resetToken, err := h.authService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		respondServiceError(w, err, "Failed to generate reset token")
		return
	}

	// The token goes straight back in the response instead of an email.
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "reset token generated",
		"reset_token": resetToken,
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		respondServiceError(w, err, "Failed to reset password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "password reset successful",
	})
}
