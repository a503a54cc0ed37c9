package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Image is the metadata row for a visit-attached image. The bytes live in
// the blob store under StorageKey; row and object must be kept in step by
// the image service.
type Image struct {
	ID        int64     `db:"id" json:"id"`
	ImageGUID uuid.UUID `db:"image_guid" json:"image_guid"`
	FileExt   string    `db:"file_ext" json:"file_ext"`
	VisitID   int64     `db:"visit_id" json:"visit_id"`
}

// StorageKey returns the blob-store object key, `{visitId}/{guid}{ext}`.
func (i *Image) StorageKey() string {
	return ImageStorageKey(i.VisitID, i.ImageGUID, i.FileExt)
}

// ImageStorageKey builds the blob-store object key for an image.
func ImageStorageKey(visitID int64, guid uuid.UUID, fileExt string) string {
	return fmt.Sprintf("%d/%s%s", visitID, guid, fileExt)
}
