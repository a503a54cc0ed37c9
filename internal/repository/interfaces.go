package repository

import (
	"context"
	"errors"

	"github.com/ordinacija/patients-api/internal/model"
)

// ErrNotFound is returned when no row matches the requested id or key.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateOib is returned when an insert or update collides with the
// unique index on patients.oib. It is the race-time backstop behind the
// application-level duplicate pre-check.
var ErrDuplicateOib = errors.New("oib already registered")

// All repository interfaces in one file
type (
	// PatientRepository handles patient rows. Get eager-loads the owned
	// prescription and visit collections (visits with their images).
	PatientRepository interface {
		List(ctx context.Context) ([]*model.Patient, error)
		Get(ctx context.Context, id int64) (*model.Patient, error)
		GetByOib(ctx context.Context, oib string) (*model.Patient, error)
		ExistsByOib(ctx context.Context, oib string) (bool, error)
		Create(ctx context.Context, patient *model.Patient) error
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id int64) error
	}

	PrescriptionRepository interface {
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error)
		Get(ctx context.Context, id int64) (*model.Prescription, error)
		Create(ctx context.Context, prescription *model.Prescription) error
		UpdateEnding(ctx context.Context, prescription *model.Prescription) error
		Delete(ctx context.Context, id int64) error
	}

	// VisitRepository handles visit rows. Reads eager-load the owned image
	// metadata collection.
	VisitRepository interface {
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Visit, error)
		Get(ctx context.Context, id int64) (*model.Visit, error)
		Create(ctx context.Context, visit *model.Visit) error
		Update(ctx context.Context, visit *model.Visit) error
		Delete(ctx context.Context, id int64) error
	}

	ImageRepository interface {
		ListByVisit(ctx context.Context, visitID int64) ([]*model.Image, error)
		Get(ctx context.Context, id int64) (*model.Image, error)
		Create(ctx context.Context, image *model.Image) error
		Delete(ctx context.Context, id int64) error
	}
)
