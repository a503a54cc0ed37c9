package prescription

import (
	"context"
	"errors"
	"fmt"

	"github.com/ordinacija/patients-api/internal/repository"
	"github.com/ordinacija/patients-api/internal/validation"
	"github.com/ordinacija/patients-api/internal/viewmodel"
	"github.com/ordinacija/patients-api/pkg/result"
)

const (
	msgInvalid  = "Prescription details aren't valid!"
	msgNotFound = "Prescription not found!"
)

type Service struct {
	repo repository.PrescriptionRepository
}

func NewService(repo repository.PrescriptionRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]viewmodel.PrescriptionView, error) {
	prescriptions, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	views := make([]viewmodel.PrescriptionView, 0, len(prescriptions))
	for _, p := range prescriptions {
		views = append(views, viewmodel.PrescriptionToView(p))
	}
	return views, nil
}

func (s *Service) Add(ctx context.Context, newPrescription viewmodel.PrescriptionView) result.Result {
	if violations := validation.ValidatePrescription(newPrescription); len(violations) > 0 {
		return result.Failure(msgInvalid)
	}

	if err := s.repo.Create(ctx, viewmodel.PrescriptionToModel(newPrescription)); err != nil {
		return result.Failure(fmt.Sprintf("Failed to add prescription: %v", err))
	}
	return result.Ok()
}

// Update ends a prescription: of the submitted record only the end date is
// applied to the stored row, the rest stays as prescribed.
func (s *Service) Update(ctx context.Context, prescriptionID int64, endedPrescription viewmodel.PrescriptionView) result.Result {
	if violations := validation.ValidatePrescription(endedPrescription); len(violations) > 0 {
		return result.Failure(msgInvalid)
	}

	prescription, err := s.repo.Get(ctx, prescriptionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		return result.Failure(fmt.Sprintf("Failed to update prescription: %v", err))
	}

	prescription.DateEnding = endedPrescription.DateEnding
	if err := s.repo.UpdateEnding(ctx, prescription); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		return result.Failure(fmt.Sprintf("Failed to update prescription: %v", err))
	}
	return result.Ok()
}

func (s *Service) Delete(ctx context.Context, prescriptionID int64) result.Result {
	if err := s.repo.Delete(ctx, prescriptionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		return result.Failure(fmt.Sprintf("Failed to delete prescription: %v", err))
	}
	return result.Ok()
}
