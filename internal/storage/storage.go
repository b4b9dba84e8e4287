// Package storage stores uploaded image bytes. Two backends exist: local
// disk (default, files served by this process under /uploads) and S3.
package storage

import (
	"context"
	"io"
)

// BlobStore persists an uploaded file under the given name and returns the
// URL it will be served from.
type BlobStore interface {
	Save(ctx context.Context, name, contentType string, data io.Reader) (string, error)
}
