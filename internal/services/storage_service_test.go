// internal/services/storage_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewear/rewear-backend/internal/config"
)

func newLocalStorage(t *testing.T) *StorageService {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Host = "localhost"
	cfg.Server.Port = "8080"

	svc, err := NewStorageService(cfg)
	require.NoError(t, err)
	return svc
}

func TestResolveURLLocalMode(t *testing.T) {
	svc := newLocalStorage(t)

	assert.Equal(t, "http://localhost:8080/uploads/items/photo.jpg", svc.ResolveURL("items/photo.jpg"))
	assert.Empty(t, svc.ResolveURL(""))
}

func TestResolveURLPassesThroughAbsoluteURLs(t *testing.T) {
	svc := newLocalStorage(t)

	assert.Equal(t, "https://cdn.example.com/a.png", svc.ResolveURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "http://legacy.example.com/b.png", svc.ResolveURL("http://legacy.example.com/b.png"))
}

func TestResolveURLsPreservesOrder(t *testing.T) {
	svc := newLocalStorage(t)

	urls := svc.ResolveURLs([]string{"items/a.jpg", "items/b.jpg"})
	require.Len(t, urls, 2)
	assert.Contains(t, urls[0], "items/a.jpg")
	assert.Contains(t, urls[1], "items/b.jpg")
}

func TestDeleteFileIsNoOpWithoutS3(t *testing.T) {
	svc := newLocalStorage(t)
	assert.NoError(t, svc.DeleteFile("items/gone.jpg"))
}

func TestGeneratePresignedURLRequiresS3(t *testing.T) {
	svc := newLocalStorage(t)
	_, err := svc.GeneratePresignedURL("items/a.jpg", presignedURLTTL)
	assert.Error(t, err)
}

func TestDefaultUploadOptions(t *testing.T) {
	svc := newLocalStorage(t)

	items := svc.GetDefaultUploadOptions("items")
	assert.Equal(t, "items", items.Folder)
	assert.Contains(t, items.AllowedTypes, ".webp")

	avatars := svc.GetDefaultUploadOptions("avatars")
	assert.Equal(t, int64(2*1024*1024), avatars.MaxSize)
}
