package repository

import (
	"context"
	"errors"
	"fmt"

	"ratemypic/internal/errs"
	"ratemypic/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PhotoRepository handles database operations for photos and their ratings
type PhotoRepository struct {
	db *pgxpool.Pool
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create creates a new photo
func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (id, owner_id, url, filename, original_name, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		photo.ID, photo.OwnerID, photo.URL, photo.Filename, photo.OriginalName,
		photo.IsActive, photo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}
	return nil
}

// GetByID retrieves a photo by ID
func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	query := `
		SELECT id, owner_id, url, filename, original_name, is_active, created_at
		FROM photos
		WHERE id = $1
	`
	var photo models.Photo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&photo.ID, &photo.OwnerID, &photo.URL, &photo.Filename, &photo.OriginalName,
		&photo.IsActive, &photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}
	return &photo, nil
}

// ActivateWithDebit flips a photo to active and debits the activation cost
// from the owner in one transaction. The debit is conditional on the balance,
// so a concurrent activation cannot overdraw. Returns the owner's new balance.
func (r *PhotoRepository) ActivateWithDebit(ctx context.Context, photoID, ownerID string, cost int) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var points int
	debit := `UPDATE users SET points = points - $1 WHERE id = $2 AND points >= $1 RETURNING points`
	err = tx.QueryRow(ctx, debit, cost, ownerID).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrInsufficientPoints
		}
		return 0, fmt.Errorf("failed to debit points: %w", err)
	}

	activate := `UPDATE photos SET is_active = TRUE WHERE id = $1`
	if _, err := tx.Exec(ctx, activate, photoID); err != nil {
		return 0, fmt.Errorf("failed to activate photo: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return points, nil
}

// Deactivate flips a photo to inactive. No points are refunded.
func (r *PhotoRepository) Deactivate(ctx context.Context, photoID string) error {
	query := `UPDATE photos SET is_active = FALSE WHERE id = $1`
	result, err := r.db.Exec(ctx, query, photoID)
	if err != nil {
		return fmt.Errorf("failed to deactivate photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return errs.ErrPhotoNotFound
	}
	return nil
}

// ListByOwner retrieves all photos owned by a user, newest first
func (r *PhotoRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Photo, error) {
	query := `
		SELECT id, owner_id, url, filename, original_name, is_active, created_at
		FROM photos
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	defer rows.Close()

	var photos []*models.Photo
	for rows.Next() {
		var photo models.Photo
		err := rows.Scan(
			&photo.ID, &photo.OwnerID, &photo.URL, &photo.Filename, &photo.OriginalName,
			&photo.IsActive, &photo.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, &photo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating photos: %w", err)
	}
	return photos, nil
}

// ListRatings retrieves all ratings of a photo in insertion order
func (r *PhotoRepository) ListRatings(ctx context.Context, photoID string) ([]models.Rating, error) {
	query := `
		SELECT id, photo_id, rater_id, score, rater_gender, rater_age, created_at
		FROM ratings
		WHERE photo_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, photoID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var rating models.Rating
		err := rows.Scan(
			&rating.ID, &rating.PhotoID, &rating.RaterID, &rating.Score,
			&rating.RaterGender, &rating.RaterAge, &rating.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}
	return ratings, nil
}

// GetRandomCandidate picks one active photo uniformly at random among those
// not owned by the rater whose owner matches the optional demographic filters.
// Randomness is delegated to the database.
func (r *PhotoRepository) GetRandomCandidate(ctx context.Context, raterID string, filter models.CandidateFilter) (*models.Candidate, error) {
	query := `
		SELECT p.id, p.owner_id, p.url, p.filename, p.original_name, p.is_active, p.created_at,
		       u.gender, u.age
		FROM photos p
		JOIN users u ON u.id = p.owner_id
		WHERE p.is_active = TRUE
		  AND p.owner_id <> $1
		  AND ($2::text IS NULL OR u.gender = $2)
		  AND ($3::int IS NULL OR u.age >= $3)
		  AND ($4::int IS NULL OR u.age <= $4)
		ORDER BY random()
		LIMIT 1
	`
	var c models.Candidate
	err := r.db.QueryRow(ctx, query, raterID, filter.Gender, filter.MinAge, filter.MaxAge).Scan(
		&c.ID, &c.OwnerID, &c.URL, &c.Filename, &c.OriginalName, &c.IsActive, &c.CreatedAt,
		&c.OwnerGender, &c.OwnerAge,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNoCandidate
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

// CreateRating appends a rating and transfers one point from the photo owner
// to the rater in one transaction. The unique (photo_id, rater_id) constraint
// maps to errs.ErrAlreadyRated, so concurrent raters cannot double-rate.
// The owner balance has no floor and may go negative. Returns the rater's
// new balance.
func (r *PhotoRepository) CreateRating(ctx context.Context, rating *models.Rating, ownerID string) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO ratings (id, photo_id, rater_id, score, rater_gender, rater_age, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, insert,
		rating.ID, rating.PhotoID, rating.RaterID, rating.Score,
		rating.RaterGender, rating.RaterAge, rating.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, errs.ErrAlreadyRated
		}
		return 0, fmt.Errorf("failed to create rating: %w", err)
	}

	debit := `UPDATE users SET points = points - 1 WHERE id = $1`
	if _, err := tx.Exec(ctx, debit, ownerID); err != nil {
		return 0, fmt.Errorf("failed to debit owner: %w", err)
	}

	var points int
	credit := `UPDATE users SET points = points + 1 WHERE id = $1 RETURNING points`
	if err := tx.QueryRow(ctx, credit, rating.RaterID).Scan(&points); err != nil {
		return 0, fmt.Errorf("failed to credit rater: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return points, nil
}

// CountByOwner counts photos uploaded by a user
func (r *PhotoRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM photos WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return count, nil
}

// CountRatingsByRater counts ratings a user has given
func (r *PhotoRepository) CountRatingsByRater(ctx context.Context, raterID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ratings WHERE rater_id = $1`, raterID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return count, nil
}
