package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps objects under a directory on disk. The directory is not
// served directly.
type LocalStore struct {
	basePath string
}

func NewLocalStore(basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", basePath, err)
	}
	return &LocalStore{basePath: basePath}, nil
}

// path resolves key inside basePath; ".." segments cannot escape it.
func (l *LocalStore) path(key string) string {
	return filepath.Join(l.basePath, filepath.Clean("/"+key))
}

func (l *LocalStore) Upload(ctx context.Context, key string, r io.Reader, contentType string, size int64) error {
	full := l.path(key)
	if err := os.MkdirAll(filepath.Dir(full), 0o700); err != nil {
		return fmt.Errorf("create directory for %s: %w", key, err)
	}

	f, err := os.OpenFile(full, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written != size {
		err = fmt.Errorf("size mismatch: expected %d bytes, wrote %d", size, written)
	}
	if err != nil {
		_ = os.Remove(full)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (l *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(l.path(key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", key, err)
	}
	return f, nil
}

// Delete is a no-op for keys that do not exist.
func (l *LocalStore) Delete(ctx context.Context, key string) error {
	if err := os.Remove(l.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
