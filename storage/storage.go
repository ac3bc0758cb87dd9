package storage

import (
	"context"
	"io"
	"log"
	"path/filepath"

	"papyrus/config"

	"github.com/google/uuid"
)

// Backend stores uploaded course files. Save returns a public locator a
// client can be redirected to; the key passed in is the handle Delete
// expects back.
type Backend interface {
	Save(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// Blob is the configured backend, set once in main. Tests swap in a fake.
var Blob Backend

// NewBackend picks the backend named by STORAGE_BACKEND.
func NewBackend(ctx context.Context) Backend {
	if config.AppConfig.StorageBackend == "s3" {
		backend, err := NewS3Backend(ctx)
		if err != nil {
			log.Fatalf("Failed to configure S3 storage: %v", err)
		}
		return backend
	}
	return &LocalBackend{Dir: config.AppConfig.UploadDir}
}

// NewObjectKey returns a fresh key for an uploaded file, keeping its
// extension.
func NewObjectKey(originalName string) string {
	return uuid.New().String() + filepath.Ext(originalName)
}
