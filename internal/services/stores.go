package services

import (
	"context"
	"time"

	"ratemypic/internal/models"
)

// UserStore is the persistence surface the services need for users
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// PhotoStore is the persistence surface the services need for photos and ratings
type PhotoStore interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id string) (*models.Photo, error)
	ActivateWithDebit(ctx context.Context, photoID, ownerID string, cost int) (int, error)
	Deactivate(ctx context.Context, photoID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Photo, error)
	ListRatings(ctx context.Context, photoID string) ([]models.Rating, error)
	GetRandomCandidate(ctx context.Context, raterID string, filter models.CandidateFilter) (*models.Candidate, error)
	CreateRating(ctx context.Context, rating *models.Rating, ownerID string) (int, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	CountRatingsByRater(ctx context.Context, raterID string) (int, error)
}
