package catalog

import (
	"context"
	"time"
)

// ObjectStorageService defines the interface for object storage operations
// used for product images
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	// Returns the URL and its expiry time
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the URL and its expiry time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject removes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists checks if an object exists in storage
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// ImageConfig holds the presigned URL expiry settings for product images
type ImageConfig struct {
	UploadURLExpiry   time.Duration
	DownloadURLExpiry time.Duration
}

// DefaultImageConfig returns the default image configuration
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		UploadURLExpiry:   15 * time.Minute,
		DownloadURLExpiry: 7 * 24 * time.Hour,
	}
}
