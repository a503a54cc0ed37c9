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

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	query := `
		SELECT id, patient_id, medication_name, date_prescribed, date_ending
		FROM prescriptions WHERE patient_id = $1 ORDER BY date_prescribed, id
	`
	prescriptions := []*model.Prescription{}
	if err := r.db.SelectContext(ctx, &prescriptions, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `
		SELECT id, patient_id, medication_name, date_prescribed, date_ending
		FROM prescriptions WHERE id = $1
	`
	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (patient_id, medication_name, date_prescribed, date_ending)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		prescription.PatientID,
		prescription.MedicationName,
		prescription.DatePrescribed,
		prescription.DateEnding,
	).Scan(&prescription.ID)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

// UpdateEnding mutates only the end date; the rest of the row is immutable
// after creation.
func (r *prescriptionRepository) UpdateEnding(ctx context.Context, prescription *model.Prescription) error {
	query := `UPDATE prescriptions SET date_ending = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, prescription.DateEnding, prescription.ID)
	if err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}
	return requireRowAffected(res)
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	return requireRowAffected(res)
}
