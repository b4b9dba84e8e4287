package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratemypic/internal/errs"
	"ratemypic/internal/handlers"
	"ratemypic/internal/middleware"
	"ratemypic/internal/models"
	"ratemypic/internal/services"
)

func newPhotoHandler(photos *mockPhotoStore, users *mockUserStore, blobs *mockBlobStore) *handlers.PhotoHandler {
	svc := services.NewPhotoService(photos, users, blobs)
	return handlers.NewPhotoHandler(svc)
}

// multipartBody builds a multipart form with a single "photo" part.
func multipartBody(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithUserID(req.Context(), "u1"))
}

func TestPhotoUpload(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		blobs := &mockBlobStore{
			saveFn: func(_ context.Context, name, _ string, data io.Reader) (string, error) {
				_, _ = io.Copy(io.Discard, data)
				return "/uploads/" + name, nil
			},
		}
		photos := &mockPhotoStore{
			createFn: func(_ context.Context, _ *models.Photo) error { return nil },
		}
		h := newPhotoHandler(photos, &mockUserStore{}, blobs)

		body, contentType := multipartBody(t, "selfie.jpg", "image/jpeg", []byte("jpegbytes"))
		req := authedRequest(http.MethodPost, "/api/photos", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.Upload(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeResponse(t, rec)
		photo, ok := resp["photo"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "u1", photo["owner_id"])
		assert.Equal(t, "selfie.jpg", photo["original_name"])
		assert.Equal(t, false, photo["is_active"])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		h := newPhotoHandler(&mockPhotoStore{}, &mockUserStore{}, &mockBlobStore{})

		body, contentType := multipartBody(t, "notes.txt", "text/plain", []byte("hello"))
		req := authedRequest(http.MethodPost, "/api/photos", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		h.Upload(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, errs.ErrUnsupportedMediaType.Error(), decodeResponse(t, rec)["error"])
	})

	t.Run("missing file field", func(t *testing.T) {
		h := newPhotoHandler(&mockPhotoStore{}, &mockUserStore{}, &mockBlobStore{})

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("caption", "no file here"))
		require.NoError(t, mw.Close())

		req := authedRequest(http.MethodPost, "/api/photos", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		h.Upload(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPhotoToggle(t *testing.T) {
	serve := func(h *handlers.PhotoHandler, photoID string) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		r.Patch("/api/photos/{photo_id}/toggle", h.Toggle)
		req := authedRequest(http.MethodPatch, "/api/photos/"+photoID+"/toggle", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	t.Run("activation returns new balance", func(t *testing.T) {
		photos := &mockPhotoStore{
			getByIDFn: func(_ context.Context, id string) (*models.Photo, error) {
				return &models.Photo{ID: id, OwnerID: "u1", IsActive: false}, nil
			},
			activateWithDebitFn: func(_ context.Context, _, _ string, _ int) (int, error) {
				return 2, nil
			},
		}
		h := newPhotoHandler(photos, &mockUserStore{}, &mockBlobStore{})

		rec := serve(h, "p1")
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		assert.Equal(t, 2.0, resp["points"])
		photo, ok := resp["photo"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, true, photo["is_active"])
	})

	t.Run("not found", func(t *testing.T) {
		photos := &mockPhotoStore{
			getByIDFn: func(_ context.Context, _ string) (*models.Photo, error) {
				return nil, errs.ErrPhotoNotFound
			},
		}
		h := newPhotoHandler(photos, &mockUserStore{}, &mockBlobStore{})

		assert.Equal(t, http.StatusNotFound, serve(h, "missing").Code)
	})

	t.Run("someone else's photo", func(t *testing.T) {
		photos := &mockPhotoStore{
			getByIDFn: func(_ context.Context, id string) (*models.Photo, error) {
				return &models.Photo{ID: id, OwnerID: "other"}, nil
			},
		}
		h := newPhotoHandler(photos, &mockUserStore{}, &mockBlobStore{})

		assert.Equal(t, http.StatusForbidden, serve(h, "p1").Code)
	})

	t.Run("insufficient points", func(t *testing.T) {
		photos := &mockPhotoStore{
			getByIDFn: func(_ context.Context, id string) (*models.Photo, error) {
				return &models.Photo{ID: id, OwnerID: "u1", IsActive: false}, nil
			},
			activateWithDebitFn: func(_ context.Context, _, _ string, _ int) (int, error) {
				return 0, errs.ErrInsufficientPoints
			},
		}
		h := newPhotoHandler(photos, &mockUserStore{}, &mockBlobStore{})

		rec := serve(h, "p1")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, errs.ErrInsufficientPoints.Error(), decodeResponse(t, rec)["error"])
	})
}

func TestMyPhotos(t *testing.T) {
	photos := &mockPhotoStore{
		listByOwnerFn: func(_ context.Context, ownerID string) ([]*models.Photo, error) {
			require.Equal(t, "u1", ownerID)
			return []*models.Photo{{ID: "p1", OwnerID: "u1"}}, nil
		},
		listRatingsFn: func(_ context.Context, _ string) ([]models.Rating, error) {
			return []models.Rating{{Score: 5, RaterGender: models.GenderMale, RaterAge: 25}}, nil
		},
	}
	h := newPhotoHandler(photos, &mockUserStore{}, &mockBlobStore{})

	req := authedRequest(http.MethodGet, "/api/photos/my", nil)
	rec := httptest.NewRecorder()
	h.MyPhotos(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	list, ok := resp["photos"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)

	entry := list[0].(map[string]interface{})
	stats := entry["stats"].(map[string]interface{})
	assert.Equal(t, 1.0, stats["total_ratings"])
	assert.Equal(t, 5.0, stats["average_score"])
}
