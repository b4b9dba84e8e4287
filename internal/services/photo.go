package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"ratemypic/internal/errs"
	"ratemypic/internal/models"
	"ratemypic/internal/storage"

	"github.com/google/uuid"
)

const (
	// ActivationCost is the point debit for flipping a photo active.
	ActivationCost = 1
	// MaxUploadBytes is the upload size ceiling.
	MaxUploadBytes = 5_000_000
)

var allowedExtensions = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
}

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// PhotoService handles photo upload, activation and statistics
type PhotoService struct {
	photos PhotoStore
	users  UserStore
	blobs  storage.BlobStore
}

// NewPhotoService creates a new photo service
func NewPhotoService(photos PhotoStore, users UserStore, blobs storage.BlobStore) *PhotoService {
	return &PhotoService{
		photos: photos,
		users:  users,
		blobs:  blobs,
	}
}

// Upload validates an uploaded file, stores its bytes and persists the photo
// record. New photos start inactive. Nothing is persisted for rejected files.
func (s *PhotoService) Upload(ctx context.Context, ownerID, originalName, contentType string, size int64, data io.Reader) (*models.Photo, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if !allowedExtensions[ext] {
		return nil, errs.ErrUnsupportedMediaType
	}
	if contentType != "" && !allowedContentTypes[contentType] {
		return nil, errs.ErrUnsupportedMediaType
	}
	if size > MaxUploadBytes {
		return nil, errs.ErrFileTooLarge
	}

	name, err := generateFilename(ext)
	if err != nil {
		return nil, err
	}

	url, err := s.blobs.Save(ctx, name, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	photo := &models.Photo{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		URL:          url,
		Filename:     name,
		OriginalName: originalName,
		IsActive:     false,
		CreatedAt:    time.Now(),
	}

	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

// Toggle flips a photo's active flag. Activating debits ActivationCost points
// from the owner atomically with the flip; deactivating refunds nothing.
// Returns the updated photo and the owner's balance.
func (s *PhotoService) Toggle(ctx context.Context, ownerID, photoID string) (*models.Photo, int, error) {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return nil, 0, err
	}
	if photo.OwnerID != ownerID {
		return nil, 0, errs.ErrNotPhotoOwner
	}

	if photo.IsActive {
		if err := s.photos.Deactivate(ctx, photoID); err != nil {
			return nil, 0, err
		}
		photo.IsActive = false

		owner, err := s.users.GetByID(ctx, ownerID)
		if err != nil {
			return nil, 0, err
		}
		return photo, owner.Points, nil
	}

	points, err := s.photos.ActivateWithDebit(ctx, photoID, ownerID, ActivationCost)
	if err != nil {
		return nil, 0, err
	}
	photo.IsActive = true
	return photo, points, nil
}

// OwnerPhotos returns all of a user's photos with rating statistics.
// Statistics are recomputed on every read from the raw rating rows.
func (s *PhotoService) OwnerPhotos(ctx context.Context, ownerID string) ([]models.PhotoWithStats, error) {
	photos, err := s.photos.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]models.PhotoWithStats, 0, len(photos))
	for _, photo := range photos {
		ratings, err := s.photos.ListRatings(ctx, photo.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, models.PhotoWithStats{
			Photo: *photo,
			Stats: ComputeStats(ratings),
		})
	}
	return result, nil
}

// UserStats returns the caller's point balance and activity counters
func (s *PhotoService) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	uploaded, err := s.photos.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	rated, err := s.photos.CountRatingsByRater(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserStats{
		Points:         user.Points,
		UploadedPhotos: uploaded,
		RatedPhotos:    rated,
	}, nil
}

// ComputeStats partitions ratings by rater gender and fixed age buckets,
// with count and mean score per partition. Means are rounded to two decimal
// places; empty partitions report zero.
func ComputeStats(ratings []models.Rating) models.PhotoStats {
	type acc struct {
		count int
		sum   int
	}

	genders := map[string]*acc{
		models.GenderMale:   {},
		models.GenderFemale: {},
		models.GenderOther:  {},
	}
	ages := make(map[string]*acc, len(models.AgeBuckets))
	for _, bucket := range models.AgeBuckets {
		ages[bucket] = &acc{}
	}

	total := acc{}
	for _, r := range ratings {
		total.count++
		total.sum += r.Score

		g := genders[r.RaterGender]
		if g == nil {
			g = genders[models.GenderOther]
		}
		g.count++
		g.sum += r.Score

		a := ages[ageBucket(r.RaterAge)]
		a.count++
		a.sum += r.Score
	}

	mean := func(a *acc) float64 {
		if a.count == 0 {
			return 0
		}
		return math.Round(float64(a.sum)/float64(a.count)*100) / 100
	}

	stats := models.PhotoStats{
		TotalRatings: total.count,
		AverageScore: mean(&total),
		ByGender:     make(map[string]models.BucketStats, len(genders)),
		ByAge:        make(map[string]models.BucketStats, len(ages)),
	}
	for gender, a := range genders {
		stats.ByGender[gender] = models.BucketStats{Count: a.count, Average: mean(a)}
	}
	for bucket, a := range ages {
		stats.ByAge[bucket] = models.BucketStats{Count: a.count, Average: mean(a)}
	}
	return stats
}

func ageBucket(age int) string {
	switch {
	case age <= 18:
		return "0-18"
	case age <= 30:
		return "19-30"
	case age <= 50:
		return "31-50"
	default:
		return "51+"
	}
}

// generateFilename builds a collision-resistant stored name:
// nanosecond timestamp, random hex suffix, original extension.
func generateFilename(ext string) (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate filename: %w", err)
	}
	return fmt.Sprintf("%d-%s.%s", time.Now().UnixNano(), hex.EncodeToString(buf), ext), nil
}
