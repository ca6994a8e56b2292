// Package storage holds product images. Two drivers are available:
//   - "local"  local filesystem, served by the app under STORAGE_URL
//   - "s3"     S3-compatible object storage (AWS S3, MinIO, R2)
//
//	if err := storage.Connect(); err != nil { ... }
//	err := storage.Default().Put(ctx, "products/mug.svg", data)
//	url := storage.URL("products/mug.svg")
package storage

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Get for a missing object.
var ErrNotExist = errors.New("storage: object does not exist")

// Disk is implemented by every driver.
type Disk interface {
	Put(ctx context.Context, path string, content []byte) error
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
	// URL returns the public URL for path.
	URL(path string) string
}
