package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/config"
)

func TestLocalStore_UploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "documents/user-1/abc.pdf", strings.NewReader("%PDF-1.7"), "application/pdf", 8))

	data, err := os.ReadFile(filepath.Join(dir, "documents", "user-1", "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	rc, err := store.Open(ctx, "documents/user-1/abc.pdf")
	require.NoError(t, err)
	data, err = io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))

	require.NoError(t, store.Delete(ctx, "documents/user-1/abc.pdf"))
	_, err = os.Stat(filepath.Join(dir, "documents", "user-1", "abc.pdf"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, "documents/user-1/abc.pdf"))
	_, err = store.Open(ctx, "documents/user-1/abc.pdf")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStore_SizeMismatchRemovesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	err = store.Upload(context.Background(), "a.txt", strings.NewReader("abc"), "text/plain", 10)

	assert.Error(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "a.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStore_KeyCannotEscapeBase(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "base"))
	require.NoError(t, err)

	require.NoError(t, store.Upload(context.Background(), "../../escape.txt", strings.NewReader("x"), "text/plain", 1))

	_, err = os.Stat(filepath.Join(dir, "base", "escape.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewS3Store_RequiresCredentials(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Bucket: "docs"})
	assert.Error(t, err)
}

func TestNew_FallsBackToLocal(t *testing.T) {
	cfg := &config.Config{DocumentStore: "s3", LocalUploadDir: t.TempDir()}

	store, err := New(cfg, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)
}
