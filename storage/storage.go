// Package storage wraps S3-compatible object storage. The concrete MinIO
// client works with any S3-compatible provider (MinIO, ArvanCloud, AWS S3).
package storage

import (
	"context"
	"io"
	"time"
)

// Storage is the interface for uploading and retrieving objects.
type Storage interface {
	// Upload streams data to the store under the given key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Delete removes an object identified by key.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
	// PresignedURL returns a time-limited URL for private objects.
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}
