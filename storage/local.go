package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalBackend writes files under Dir, which main serves as /uploads.
type LocalBackend struct {
	Dir string
}

func (b *LocalBackend) Save(_ context.Context, key string, r io.Reader) (string, error) {
	if err := os.MkdirAll(b.Dir, 0755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(b.Dir, key))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", err
	}

	return "/uploads/" + key, nil
}

func (b *LocalBackend) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(b.Dir, key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
