package services

import (
	"context"
	"time"

	"ratemypic/internal/errs"
	"ratemypic/internal/models"

	"github.com/google/uuid"
)

// RatingService serves rating candidates and records ratings
type RatingService struct {
	photos PhotoStore
	users  UserStore
}

// NewRatingService creates a new rating service
func NewRatingService(photos PhotoStore, users UserStore) *RatingService {
	return &RatingService{
		photos: photos,
		users:  users,
	}
}

// Candidate picks one random active photo the rater has not uploaded,
// optionally filtered by owner gender and age range
func (s *RatingService) Candidate(ctx context.Context, raterID string, filter models.CandidateFilter) (*models.Candidate, error) {
	return s.photos.GetRandomCandidate(ctx, raterID, filter)
}

// Rate records a rating with a snapshot of the rater's demographics and
// transfers one point from the photo owner to the rater. The append and both
// balance mutations commit as one transaction. Returns the rater's balance.
func (s *RatingService) Rate(ctx context.Context, raterID, photoID string, score int) (int, error) {
	if score < 1 || score > 5 {
		return 0, errs.ErrInvalidScore
	}

	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return 0, err
	}
	if !photo.IsActive {
		return 0, errs.ErrPhotoNotFound
	}
	if photo.OwnerID == raterID {
		return 0, errs.ErrSelfRating
	}

	rater, err := s.users.GetByID(ctx, raterID)
	if err != nil {
		return 0, err
	}

	rating := &models.Rating{
		ID:          uuid.New().String(),
		PhotoID:     photoID,
		RaterID:     raterID,
		Score:       score,
		RaterGender: rater.Gender,
		RaterAge:    rater.Age,
		CreatedAt:   time.Now(),
	}

	return s.photos.CreateRating(ctx, rating, photo.OwnerID)
}
