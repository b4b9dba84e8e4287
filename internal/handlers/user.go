package handlers

import (
	"net/http"
	"time"

	"ratemypic/internal/middleware"
	"ratemypic/internal/services"
)

// UserHandler serves the current user and their activity summary
type UserHandler struct {
	authService  *services.AuthService
	photoService *services.PhotoService
}

// NewUserHandler creates a new user handler
func NewUserHandler(authService *services.AuthService, photoService *services.PhotoService) *UserHandler {
	return &UserHandler{
		authService:  authService,
		photoService: photoService,
	}
}

// Me handles GET /api/user
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		respondServiceError(w, err, "Failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Stats handles GET /api/stats
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	stats, err := h.photoService.UserStats(ctx, userID)
	if err != nil {
		respondServiceError(w, err, "Failed to get user stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Status handles GET /api/status
func Status(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
