package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/repository"
)

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) repository.ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) ListByVisit(ctx context.Context, visitID int64) ([]*model.Image, error) {
	query := `SELECT id, image_guid, file_ext, visit_id FROM images WHERE visit_id = $1 ORDER BY id`
	images := []*model.Image{}
	if err := r.db.SelectContext(ctx, &images, query, visitID); err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

func (r *imageRepository) Get(ctx context.Context, id int64) (*model.Image, error) {
	query := `SELECT id, image_guid, file_ext, visit_id FROM images WHERE id = $1`
	var image model.Image
	if err := r.db.GetContext(ctx, &image, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &image, nil
}

func (r *imageRepository) Create(ctx context.Context, image *model.Image) error {
	query := `
		INSERT INTO images (image_guid, file_ext, visit_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		image.ImageGUID,
		image.FileExt,
		image.VisitID,
	).Scan(&image.ID)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

func (r *imageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return requireRowAffected(res)
}
