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

type visitRepository struct {
	db *sqlx.DB
}

func NewVisitRepository(db *sqlx.DB) repository.VisitRepository {
	return &visitRepository{db: db}
}

func (r *visitRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Visit, error) {
	return loadVisitsByPatient(ctx, r.db, patientID)
}

func (r *visitRepository) Get(ctx context.Context, id int64) (*model.Visit, error) {
	query := `SELECT id, patient_id, type, date, doctors_notes FROM visits WHERE id = $1`
	var visit model.Visit
	if err := r.db.GetContext(ctx, &visit, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}

	images := []*model.Image{}
	query = `SELECT id, image_guid, file_ext, visit_id FROM images WHERE visit_id = $1 ORDER BY id`
	if err := r.db.SelectContext(ctx, &images, query, id); err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	visit.Images = images

	return &visit, nil
}

func (r *visitRepository) Create(ctx context.Context, visit *model.Visit) error {
	query := `
		INSERT INTO visits (patient_id, type, date, doctors_notes)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		visit.PatientID,
		visit.Type,
		visit.Date,
		visit.DoctorsNotes,
	).Scan(&visit.ID)
	if err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

// Update mutates the visit's type, date and notes; ownership never moves.
func (r *visitRepository) Update(ctx context.Context, visit *model.Visit) error {
	query := `UPDATE visits SET type = $1, date = $2, doctors_notes = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, visit.Type, visit.Date, visit.DoctorsNotes, visit.ID)
	if err != nil {
		return fmt.Errorf("failed to update visit: %w", err)
	}
	return requireRowAffected(res)
}

// Delete removes the visit row; image metadata cascades at the store level.
// Blob objects of the cascaded images are the image service's concern.
func (r *visitRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM visits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete visit: %w", err)
	}
	return requireRowAffected(res)
}

// loadVisitsByPatient reads a patient's visits with their image metadata in
// two round-trips. It runs against either the DB or an open transaction.
func loadVisitsByPatient(ctx context.Context, db sqlx.ExtContext, patientID int64) ([]*model.Visit, error) {
	visits := []*model.Visit{}
	query := `SELECT id, patient_id, type, date, doctors_notes FROM visits WHERE patient_id = $1 ORDER BY date, id`
	if err := sqlx.SelectContext(ctx, db, &visits, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	if len(visits) == 0 {
		return visits, nil
	}

	byID := make(map[int64]*model.Visit, len(visits))
	ids := make([]int64, 0, len(visits))
	for _, v := range visits {
		v.Images = []*model.Image{}
		byID[v.ID] = v
		ids = append(ids, v.ID)
	}

	query, args, err := sqlx.In(`SELECT id, image_guid, file_ext, visit_id FROM images WHERE visit_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build image query: %w", err)
	}
	images := []*model.Image{}
	if err := sqlx.SelectContext(ctx, db, &images, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	for _, img := range images {
		if v, ok := byID[img.VisitID]; ok {
			v.Images = append(v.Images, img)
		}
	}

	return visits, nil
}
