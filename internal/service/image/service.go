package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/repository"
	"github.com/ordinacija/patients-api/internal/viewmodel"
	"github.com/ordinacija/patients-api/pkg/blobstore"
	"github.com/ordinacija/patients-api/pkg/result"
)

const msgNotFound = "Image not found"

// signedURLTTL is the lifetime requested for signed URLs.
const signedURLTTL = time.Hour

// urlCacheTTL keeps cached signed URLs comfortably inside their lifetime.
const urlCacheTTL = 55 * time.Minute

// MaxUploadSize bounds the buffered image payload (10 MB, matching the
// upload form limit).
const MaxUploadSize = 10 * 1024 * 1024

// ErrTooLarge is returned when an uploaded image exceeds MaxUploadSize.
var ErrTooLarge = errors.New("image exceeds maximum allowed size")

// Service coordinates the two image stores: metadata rows in the relational
// store and the bytes in the blob store, keyed `{visitId}/{guid}{ext}`.
type Service struct {
	repo     repository.ImageRepository
	store    blobstore.Store
	urlCache *cache.Cache
}

func NewService(repo repository.ImageRepository, store blobstore.Store) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		urlCache: cache.New(urlCacheTTL, 10*time.Minute),
	}
}

// Upload buffers the stream fully, pushes the bytes to the blob store under a
// freshly generated key with overwrite disabled, then inserts the metadata
// row. If the insert fails after a successful put, the just-uploaded object
// is removed again so no orphan blob is left behind.
func (s *Service) Upload(ctx context.Context, visitID int64, r io.Reader, fileName string) result.Result {
	imageGUID := uuid.New()
	fileExt := strings.ToLower(filepath.Ext(fileName))
	key := model.ImageStorageKey(visitID, imageGUID, fileExt)

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return result.Failure(fmt.Sprintf("Failed to upload image: %v", err))
	}
	if int64(len(data)) > MaxUploadSize {
		return result.Failure(fmt.Sprintf("Failed to upload image: %v", ErrTooLarge))
	}

	if err := s.store.Put(ctx, key, data, contentTypeFor(fileExt), false); err != nil {
		return result.Failure(fmt.Sprintf("Failed to upload image: %v", err))
	}

	image := viewmodel.ImageToModel(viewmodel.ImageView{
		GUID:    imageGUID,
		FileExt: fileExt,
		VisitID: visitID,
	})
	if err := s.repo.Create(ctx, image); err != nil {
		// Compensate so the blob store does not keep an object the
		// metadata store never learned about.
		if removeErr := s.store.Remove(ctx, key); removeErr != nil {
			log.Error().Err(removeErr).Str("key", key).Msg("failed to remove orphaned blob after insert failure")
		}
		return result.Failure(fmt.Sprintf("Failed to upload image: %v", err))
	}

	return result.Ok()
}

// Delete removes the blob first and the metadata row second. A blob-store
// failure aborts the operation with the row intact, so a surviving row always
// points at an existing object.
func (s *Service) Delete(ctx context.Context, imageID int64) result.Result {
	image, err := s.repo.Get(ctx, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		return result.Failure(fmt.Sprintf("Failed to delete image: %v", err))
	}

	key := image.StorageKey()
	if err := s.store.Remove(ctx, key); err != nil {
		return result.Failure(fmt.Sprintf("Failed to delete image: %v", err))
	}
	s.urlCache.Delete(key)

	if err := s.repo.Delete(ctx, imageID); err != nil {
		return result.Failure(fmt.Sprintf("Failed to delete image: %v", err))
	}

	return result.Ok()
}

// URL returns a one-hour signed URL for the image, served from a short-lived
// in-process cache when possible. If signing fails it falls back to the
// public URL, trading access control for availability.
func (s *Service) URL(ctx context.Context, imageGUID uuid.UUID, visitID int64, fileExt string) string {
	key := model.ImageStorageKey(visitID, imageGUID, fileExt)

	if cached, found := s.urlCache.Get(key); found {
		return cached.(string)
	}

	signed, err := s.store.SignedURL(ctx, key, signedURLTTL)
	if err != nil {
		return s.store.PublicURL(key)
	}
	s.urlCache.SetDefault(key, signed)
	return signed
}

// URLsForVisit resolves a URL for every image of the visit, sequentially, in
// metadata order.
func (s *Service) URLsForVisit(ctx context.Context, visitID int64) ([]string, error) {
	images, err := s.repo.ListByVisit(ctx, visitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, s.URL(ctx, img.ImageGUID, visitID, img.FileExt))
	}
	return urls, nil
}

func contentTypeFor(fileExt string) string {
	switch strings.ToLower(fileExt) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
