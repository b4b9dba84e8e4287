package handlers_test

import (
	"context"
	"errors"
	"io"
	"time"

	"ratemypic/internal/models"
)

var errUnexpectedCall = errors.New("unexpected store call")

type mockUserStore struct {
	createFn          func(ctx context.Context, user *models.User) error
	getByIDFn         func(ctx context.Context, id string) (*models.User, error)
	getByEmailFn      func(ctx context.Context, email string) (*models.User, error)
	getByResetTokenFn func(ctx context.Context, token string) (*models.User, error)
	setResetTokenFn   func(ctx context.Context, userID, token string, expiry time.Time) error
	updatePasswordFn  func(ctx context.Context, userID, hash string) error
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	if m.createFn == nil {
		return errUnexpectedCall
	}
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.getByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getByEmailFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	if m.getByResetTokenFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByResetTokenFn(ctx, token)
}

func (m *mockUserStore) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	if m.setResetTokenFn == nil {
		return errUnexpectedCall
	}
	return m.setResetTokenFn(ctx, userID, token, expiry)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID, hash string) error {
	if m.updatePasswordFn == nil {
		return errUnexpectedCall
	}
	return m.updatePasswordFn(ctx, userID, hash)
}

type mockPhotoStore struct {
	createFn              func(ctx context.Context, photo *models.Photo) error
	getByIDFn             func(ctx context.Context, id string) (*models.Photo, error)
	activateWithDebitFn   func(ctx context.Context, photoID, ownerID string, cost int) (int, error)
	deactivateFn          func(ctx context.Context, photoID string) error
	listByOwnerFn         func(ctx context.Context, ownerID string) ([]*models.Photo, error)
	listRatingsFn         func(ctx context.Context, photoID string) ([]models.Rating, error)
	getRandomCandidateFn  func(ctx context.Context, raterID string, filter models.CandidateFilter) (*models.Candidate, error)
	createRatingFn        func(ctx context.Context, rating *models.Rating, ownerID string) (int, error)
	countByOwnerFn        func(ctx context.Context, ownerID string) (int, error)
	countRatingsByRaterFn func(ctx context.Context, raterID string) (int, error)
}

func (m *mockPhotoStore) Create(ctx context.Context, photo *models.Photo) error {
	if m.createFn == nil {
		return errUnexpectedCall
	}
	return m.createFn(ctx, photo)
}

func (m *mockPhotoStore) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	if m.getByIDFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockPhotoStore) ActivateWithDebit(ctx context.Context, photoID, ownerID string, cost int) (int, error) {
	if m.activateWithDebitFn == nil {
		return 0, errUnexpectedCall
	}
	return m.activateWithDebitFn(ctx, photoID, ownerID, cost)
}

func (m *mockPhotoStore) Deactivate(ctx context.Context, photoID string) error {
	if m.deactivateFn == nil {
		return errUnexpectedCall
	}
	return m.deactivateFn(ctx, photoID)
}

func (m *mockPhotoStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Photo, error) {
	if m.listByOwnerFn == nil {
		return nil, errUnexpectedCall
	}
	return m.listByOwnerFn(ctx, ownerID)
}

func (m *mockPhotoStore) ListRatings(ctx context.Context, photoID string) ([]models.Rating, error) {
	if m.listRatingsFn == nil {
		return nil, errUnexpectedCall
	}
	return m.listRatingsFn(ctx, photoID)
}

func (m *mockPhotoStore) GetRandomCandidate(ctx context.Context, raterID string, filter models.CandidateFilter) (*models.Candidate, error) {
	if m.getRandomCandidateFn == nil {
		return nil, errUnexpectedCall
	}
	return m.getRandomCandidateFn(ctx, raterID, filter)
}

func (m *mockPhotoStore) CreateRating(ctx context.Context, rating *models.Rating, ownerID string) (int, error) {
	if m.createRatingFn == nil {
		return 0, errUnexpectedCall
	}
	return m.createRatingFn(ctx, rating, ownerID)
}

func (m *mockPhotoStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if m.countByOwnerFn == nil {
		return 0, errUnexpectedCall
	}
	return m.countByOwnerFn(ctx, ownerID)
}

func (m *mockPhotoStore) CountRatingsByRater(ctx context.Context, raterID string) (int, error) {
	if m.countRatingsByRaterFn == nil {
		return 0, errUnexpectedCall
	}
	return m.countRatingsByRaterFn(ctx, raterID)
}

type mockBlobStore struct {
	saveFn func(ctx context.Context, name, contentType string, data io.Reader) (string, error)
}

func (m *mockBlobStore) Save(ctx context.Context, name, contentType string, data io.Reader) (string, error) {
	if m.saveFn == nil {
		return "", errUnexpectedCall
	}
	return m.saveFn(ctx, name, contentType, data)
}
