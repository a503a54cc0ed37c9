package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ordinacija/patients-api/internal/repository"
	"github.com/ordinacija/patients-api/internal/validation"
	"github.com/ordinacija/patients-api/internal/viewmodel"
	apperrors "github.com/ordinacija/patients-api/pkg/errors"
	"github.com/ordinacija/patients-api/pkg/result"
)

const (
	msgInvalid           = "Patient details aren't valid!"
	msgAlreadyRegistered = "Patient is already registered in the system!"
	msgNotFound          = "Patient not found!"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

// List returns all patients, optionally narrowed by a case-insensitive
// substring match against Oib, first name and last name.
func (s *Service) List(ctx context.Context, search string) ([]viewmodel.PatientView, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	views := make([]viewmodel.PatientView, 0, len(patients))
	for _, p := range patients {
		view := viewmodel.PatientToView(p)
		if search == "" || matchesSearch(view, search) {
			views = append(views, view)
		}
	}
	return views, nil
}

// Get returns the patient with its prescriptions and visits eager-loaded.
// A missing id is an error, never an empty patient.
func (s *Service) Get(ctx context.Context, id int64) (*viewmodel.PatientView, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to get patient: %w", err))
	}
	view := viewmodel.PatientToView(patient)
	return &view, nil
}

// GetByOib looks a patient up by its national identifier. An absent Oib is a
// valid outcome and yields (nil, nil).
func (s *Service) GetByOib(ctx context.Context, oib string) (*viewmodel.PatientView, error) {
	patient, err := s.repo.GetByOib(ctx, oib)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by oib: %w", err)
	}
	view := viewmodel.PatientToView(patient)
	return &view, nil
}

// Add validates the submitted patient, rejects a duplicate Oib, and inserts.
// Validation runs first so an invalid record is always reported as invalid;
// the unique index on oib backstops the duplicate pre-check against races.
func (s *Service) Add(ctx context.Context, newPatient viewmodel.PatientView) result.Result {
	if violations := validation.ValidatePatient(newPatient); len(violations) > 0 {
		return result.Failure(msgInvalid)
	}

	exists, err := s.repo.ExistsByOib(ctx, newPatient.Oib)
	if err != nil {
		return result.Failure(fmt.Sprintf("Failed to add patient: %v", err))
	}
	if exists {
		return result.Failure(msgAlreadyRegistered)
	}

	if err := s.repo.Create(ctx, viewmodel.PatientToModel(newPatient)); err != nil {
		if errors.Is(err, repository.ErrDuplicateOib) {
			return result.Failure(msgAlreadyRegistered)
		}
		return result.Failure(fmt.Sprintf("Failed to add patient: %v", err))
	}
	return result.Ok()
}

// Update validates, then overwrites every scalar field of the matching row.
func (s *Service) Update(ctx context.Context, updatedPatient viewmodel.PatientView) result.Result {
	if violations := validation.ValidatePatient(updatedPatient); len(violations) > 0 {
		return result.Failure(msgInvalid)
	}

	if err := s.repo.Update(ctx, viewmodel.PatientToModel(updatedPatient)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		if errors.Is(err, repository.ErrDuplicateOib) {
			return result.Failure(msgAlreadyRegistered)
		}
		return result.Failure(fmt.Sprintf("Failed to update patient: %v", err))
	}
	return result.Ok()
}

// Delete removes the patient; prescriptions and visits cascade at the store
// level.
func (s *Service) Delete(ctx context.Context, id int64) result.Result {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		return result.Failure(fmt.Sprintf("Failed to delete patient: %v", err))
	}
	return result.Ok()
}

func matchesSearch(p viewmodel.PatientView, search string) bool {
	term := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Oib), term) ||
		strings.Contains(strings.ToLower(p.FirstName), term) ||
		strings.Contains(strings.ToLower(p.LastName), term)
}
