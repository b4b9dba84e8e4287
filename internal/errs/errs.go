// Package errs defines the domain error taxonomy and its HTTP mapping.
package errs

import (
	"errors"
	"net/http"
)

var (
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned on login with unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when no user matches the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidResetToken is returned when a reset token is unknown, consumed or expired.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrPhotoNotFound is returned when a photo does not exist or is not visible.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrNotPhotoOwner is returned when a photo exists but belongs to another user.
	ErrNotPhotoOwner = errors.New("photo belongs to another user")
	// ErrInsufficientPoints is returned when activating a photo without enough points.
	ErrInsufficientPoints = errors.New("not enough points to activate photo")
	// ErrSelfRating is returned when a user rates their own photo.
	ErrSelfRating = errors.New("cannot rate own photo")
	// ErrAlreadyRated is returned when a user rates the same photo twice.
	ErrAlreadyRated = errors.New("photo already rated by user")
	// ErrNoCandidate is returned when no photo matches the candidate filters.
	ErrNoCandidate = errors.New("no photos available for rating")
	// ErrUnsupportedMediaType is returned for uploads outside the image allow-list.
	ErrUnsupportedMediaType = errors.New("unsupported file type")
	// ErrFileTooLarge is returned for uploads over the size ceiling.
	ErrFileTooLarge = errors.New("file exceeds maximum size")
	// ErrInvalidScore is returned when a rating score is outside [1,5].
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)

// HTTPStatus maps a domain error to its HTTP status code.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrAlreadyRated),
		errors.Is(err, ErrSelfRating):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidResetToken),
		errors.Is(err, ErrInsufficientPoints),
		errors.Is(err, ErrInvalidScore):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrPhotoNotFound),
		errors.Is(err, ErrNoCandidate):
		return http.StatusNotFound
	case errors.Is(err, ErrNotPhotoOwner):
		return http.StatusForbidden
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
