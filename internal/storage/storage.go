// Package storage keeps uploaded files in an object store.
package storage

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/config"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore saves, reads and removes objects by key. Objects are private;
// clients reach them only through the API.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New picks the store named by cfg.DocumentStore. An S3 store that cannot be
// configured falls back to the local directory.
func New(cfg *config.Config, log *zap.Logger) (ObjectStore, error) {
	local := func() (ObjectStore, error) {
		return NewLocalStore(cfg.LocalUploadDir)
	}
	if cfg.DocumentStore != "s3" {
		return local()
	}

	s3Store, err := NewS3Store(context.Background(), S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretKey,
	})
	if err != nil {
		log.Warn("s3 document store unavailable, using local storage", zap.Error(err))
		return local()
	}
	return s3Store, nil
}
