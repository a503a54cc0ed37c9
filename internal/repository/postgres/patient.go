package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT id, first_name, last_name, is_male, oib, birthday FROM patients ORDER BY id`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// Get eager-loads the patient's prescriptions and visits, and each visit's
// image metadata. The loads run inside one transaction so a concurrent write
// cannot produce a record whose collections disagree with its scalars.
func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	err := WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `SELECT id, first_name, last_name, is_male, oib, birthday FROM patients WHERE id = $1`
		if err := tx.GetContext(ctx, &patient, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return repository.ErrNotFound
			}
			return fmt.Errorf("failed to get patient: %w", err)
		}

		prescriptions := []*model.Prescription{}
		query = `SELECT id, patient_id, medication_name, date_prescribed, date_ending
			FROM prescriptions WHERE patient_id = $1 ORDER BY date_prescribed, id`
		if err := tx.SelectContext(ctx, &prescriptions, query, id); err != nil {
			return fmt.Errorf("failed to load prescriptions: %w", err)
		}
		patient.Prescriptions = prescriptions

		visits, err := loadVisitsByPatient(ctx, tx, id)
		if err != nil {
			return err
		}
		patient.Visits = visits
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) GetByOib(ctx context.Context, oib string) (*model.Patient, error) {
	query := `SELECT id, first_name, last_name, is_male, oib, birthday FROM patients WHERE oib = $1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, oib); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient by oib: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) ExistsByOib(ctx context.Context, oib string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM patients WHERE oib = $1)`
	if err := r.db.GetContext(ctx, &exists, query, oib); err != nil {
		return false, fmt.Errorf("failed to check oib: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (first_name, last_name, is_male, oib, birthday)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.IsMale,
		patient.Oib,
		patient.Birthday,
	).Scan(&patient.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateOib
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// Update overwrites every scalar field of the row, a full-replace semantic.
func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, is_male = $3, oib = $4, birthday = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.IsMale,
		patient.Oib,
		patient.Birthday,
		patient.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateOib
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return requireRowAffected(res)
}

// Delete removes the patient row; prescriptions, visits and image metadata
// go with it through ON DELETE CASCADE foreign keys.
func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return requireRowAffected(res)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func requireRowAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
