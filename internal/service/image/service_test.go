package image

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordinacija/patients-api/internal/repository/memory"
	"github.com/ordinacija/patients-api/pkg/blobstore"
)

func newFixture() (*memory.Store, *blobstore.MemoryStore, *Service) {
	store := memory.NewStore()
	blobs := blobstore.NewMemoryStore("http://storage.local/images")
	svc := NewService(store.Images(), blobs)
	return store, blobs, svc
}

func TestUpload(t *testing.T) {
	store, blobs, svc := newFixture()
	ctx := context.Background()

	res := svc.Upload(ctx, 7, bytes.NewReader([]byte("png-bytes")), "scan.png")
	require.True(t, res.IsSuccess(), res.Error())

	images, err := store.Images().ListByVisit(ctx, 7)
	require.NoError(t, err)
	require.Len(t, images, 1)
	img := images[0]
	assert.Equal(t, ".png", img.FileExt)
	assert.Equal(t, int64(7), img.VisitID)

	key := img.StorageKey()
	assert.True(t, strings.HasPrefix(key, "7/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	data, contentType, ok := blobs.Object(key)
	require.True(t, ok, "blob must exist under %s", key)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
}

func TestUploadBlobFailureLeavesNoRow(t *testing.T) {
	store, blobs, svc := newFixture()
	blobs.FailPut = errors.New("storage down")

	res := svc.Upload(context.Background(), 7, bytes.NewReader([]byte("x")), "scan.png")
	assert.False(t, res.IsSuccess())
	assert.Contains(t, res.Error(), "Failed to upload image")

	images, err := store.Images().ListByVisit(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, images)
}

func TestUploadInsertFailureCompensatesBlob(t *testing.T) {
	store, blobs, svc := newFixture()
	store.FailNext = errors.New("insert failed")

	res := svc.Upload(context.Background(), 7, bytes.NewReader([]byte("x")), "scan.png")
	assert.False(t, res.IsSuccess())
	assert.Equal(t, 0, blobs.Len(), "orphaned blob must be removed after the insert fails")
}

func TestUploadTooLarge(t *testing.T) {
	_, blobs, svc := newFixture()

	res := svc.Upload(context.Background(), 7, bytes.NewReader(make([]byte, MaxUploadSize+1)), "big.png")
	assert.False(t, res.IsSuccess())
	assert.Contains(t, res.Error(), "maximum allowed size")
	assert.Equal(t, 0, blobs.Len())
}

func TestDelete(t *testing.T) {
	store, blobs, svc := newFixture()
	ctx := context.Background()

	require.True(t, svc.Upload(ctx, 7, bytes.NewReader([]byte("x")), "scan.jpg").IsSuccess())
	images, err := store.Images().ListByVisit(ctx, 7)
	require.NoError(t, err)
	img := images[0]

	res := svc.Delete(ctx, img.ID)
	require.True(t, res.IsSuccess())

	assert.False(t, blobs.Contains(img.StorageKey()))
	_, err = store.Images().Get(ctx, img.ID)
	assert.Error(t, err)
}

func TestDeleteNotFound(t *testing.T) {
	_, _, svc := newFixture()

	res := svc.Delete(context.Background(), 404)
	assert.False(t, res.IsSuccess())
	assert.Equal(t, "Image not found", res.Error())
}

func TestDeleteBlobFailureKeepsRow(t *testing.T) {
	store, blobs, svc := newFixture()
	ctx := context.Background()

	require.True(t, svc.Upload(ctx, 7, bytes.NewReader([]byte("x")), "scan.jpg").IsSuccess())
	images, err := store.Images().ListByVisit(ctx, 7)
	require.NoError(t, err)
	img := images[0]

	blobs.FailRemove = errors.New("storage down")
	res := svc.Delete(ctx, img.ID)
	assert.False(t, res.IsSuccess())

	// The metadata row must survive so it still points at the blob.
	_, err = store.Images().Get(ctx, img.ID)
	assert.NoError(t, err)
}

func TestURLSignedAndCached(t *testing.T) {
	store, _, svc := newFixture()
	ctx := context.Background()

	require.True(t, svc.Upload(ctx, 7, bytes.NewReader([]byte("x")), "scan.png").IsSuccess())
	images, err := store.Images().ListByVisit(ctx, 7)
	require.NoError(t, err)
	img := images[0]

	url := svc.URL(ctx, img.ImageGUID, img.VisitID, img.FileExt)
	assert.Contains(t, url, img.StorageKey())
	assert.Contains(t, url, "expires=")

	// Second resolution is served from the cache.
	again := svc.URL(ctx, img.ImageGUID, img.VisitID, img.FileExt)
	assert.Equal(t, url, again)
}

func TestURLFallsBackToPublic(t *testing.T) {
	store, blobs, svc := newFixture()
	ctx := context.Background()

	require.True(t, svc.Upload(ctx, 7, bytes.NewReader([]byte("x")), "scan.png").IsSuccess())
	images, err := store.Images().ListByVisit(ctx, 7)
	require.NoError(t, err)
	img := images[0]

	blobs.FailSign = errors.New("signing down")
	url := svc.URL(ctx, img.ImageGUID, img.VisitID, img.FileExt)
	assert.Equal(t, blobs.PublicURL(img.StorageKey()), url)
	assert.NotContains(t, url, "expires=")
}

func TestURLsForVisit(t *testing.T) {
	store, _, svc := newFixture()
	ctx := context.Background()

	require.True(t, svc.Upload(ctx, 7, bytes.NewReader([]byte("a")), "one.png").IsSuccess())
	require.True(t, svc.Upload(ctx, 7, bytes.NewReader([]byte("b")), "two.jpg").IsSuccess())
	require.True(t, svc.Upload(ctx, 8, bytes.NewReader([]byte("c")), "other.gif").IsSuccess())

	urls, err := svc.URLsForVisit(ctx, 7)
	require.NoError(t, err)
	require.Len(t, urls, 2)
	for _, url := range urls {
		assert.Contains(t, url, "7/")
	}

	images, err := store.Images().ListByVisit(ctx, 7)
	require.NoError(t, err)
	assert.Contains(t, urls[0], images[0].StorageKey())
	assert.Contains(t, urls[1], images[1].StorageKey())
}

func TestContentTypeFor(t *testing.T) {
	tests := map[string]string{
		".jpg":  "image/jpeg",
		".JPEG": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".bmp":  "image/bmp",
		".webp": "image/webp",
		".pdf":  "application/octet-stream",
		"":      "application/octet-stream",
	}
	for ext, want := range tests {
		assert.Equal(t, want, contentTypeFor(ext), "extension %q", ext)
	}
}
