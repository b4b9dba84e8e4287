package handlers

import (
	"net/http"

	"ratemypic/internal/errs"
	"ratemypic/internal/middleware"
	"ratemypic/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles photo upload, activation and listing requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// Upload handles POST /api/photos
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	// Some slack over the ceiling so the size check in the service reports
	// oversized files as 413 instead of a parse error.
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadBytes+64*1024)
	if err := r.ParseMultipartForm(services.MaxUploadBytes); err != nil {
		respondError(w, errs.ErrFileTooLarge.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, "photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := h.photoService.Upload(ctx, userID,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		respondServiceError(w, err, "Failed to upload photo")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("photo_id", photo.ID).
		Str("filename", photo.Filename).
		Msg("Photo uploaded")

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"photo": photo,
	})
}

// Toggle handles PATCH /api/photos/{photo_id}/toggle
func (h *PhotoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	photoID := chi.URLParam(r, "photo_id")

	photo, points, err := h.photoService.Toggle(ctx, userID, photoID)
	if err != nil {
		respondServiceError(w, err, "Failed to toggle photo")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("photo_id", photoID).
		Bool("is_active", photo.IsActive).
		Msg("Photo toggled")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"photo":  photo,
		"points": points,
	})
}

// MyPhotos handles GET /api/photos/my
func (h *PhotoHandler) MyPhotos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	photos, err := h.photoService.OwnerPhotos(ctx, userID)
	if err != nil {
		respondServiceError(w, err, "Failed to list photos")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"photos": photos,
	})
}
