package handlers

import (
	"net/http"
	"strconv"

	"ratemypic/internal/middleware"
	"ratemypic/internal/models"
	"ratemypic/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// RatingHandler serves rating candidates and records ratings
type RatingHandler struct {
	ratingService *services.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

type rateRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// Random handles GET /api/photos/random
func (h *RatingHandler) Random(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	filter, ok := parseCandidateFilter(w, r)
	if !ok {
		return
	}

	candidate, err := h.ratingService.Candidate(ctx, userID, filter)
	if err != nil {
		respondServiceError(w, err, "Failed to pick candidate")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"photo": candidate,
	})
}

// Rate handles POST /api/photos/{photo_id}/rate
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	photoID := chi.URLParam(r, "photo_id")

	var req rateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	points, err := h.ratingService.Rate(ctx, userID, photoID, req.Score)
	if err != nil {
		respondServiceError(w, err, "Failed to rate photo")
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("photo_id", photoID).
		Int("score", req.Score).
		Msg("Photo rated")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "photo rated",
		"points":  points,
	})
}

func parseCandidateFilter(w http.ResponseWriter, r *http.Request) (models.CandidateFilter, bool) {
	var filter models.CandidateFilter
	q := r.URL.Query()

	if gender := q.Get("gender"); gender != "" {
		if gender != models.GenderMale && gender != models.GenderFemale && gender != models.GenderOther {
			respondError(w, "gender must be one of: male female other", http.StatusBadRequest)
			return filter, false
		}
		filter.Gender = &gender
	}
	if minAgeStr := q.Get("minAge"); minAgeStr != "" {
		minAge, err := strconv.Atoi(minAgeStr)
		if err != nil || minAge < 0 {
			respondError(w, "minAge must be a non-negative integer", http.StatusBadRequest)
			return filter, false
		}
		filter.MinAge = &minAge
	}
	if maxAgeStr := q.Get("maxAge"); maxAgeStr != "" {
		maxAge, err := strconv.Atoi(maxAgeStr)
		if err != nil || maxAge < 0 {
			respondError(w, "maxAge must be a non-negative integer", http.StatusBadRequest)
			return filter, false
		}
		filter.MaxAge = &maxAge
	}
	return filter, true
}
