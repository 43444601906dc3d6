package storage

import (
	"context"
	"io"
)

// Storage is the backend venue images are written to.
type Storage interface {
	// Put stores a file under key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for key.
	GetURL(key string) string
}

// Config selects and configures a backend
type Config struct {
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	LocalPath    string
	LocalBaseURL string
}

// New returns S3 storage when a bucket is configured, local disk otherwise
func New(cfg Config) (Storage, error) {
	if cfg.S3Bucket != "" {
		return NewS3Storage(cfg)
	}
	return NewLocalStorage(cfg.LocalPath, cfg.LocalBaseURL)
}
