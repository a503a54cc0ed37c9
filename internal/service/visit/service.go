package visit

import (
	"context"
	"errors"
	"fmt"

	"github.com/ordinacija/patients-api/internal/repository"
	"github.com/ordinacija/patients-api/internal/validation"
	"github.com/ordinacija/patients-api/internal/viewmodel"
	apperrors "github.com/ordinacija/patients-api/pkg/errors"
	"github.com/ordinacija/patients-api/pkg/result"
)

const (
	msgInvalid  = "Visit details aren't valid!"
	msgNotFound = "Visit not found!"
)

type Service struct {
	repo repository.VisitRepository
}

func NewService(repo repository.VisitRepository) *Service {
	return &Service{repo: repo}
}

// ListByPatient returns the patient's visits with image metadata attached.
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]viewmodel.VisitView, error) {
	visits, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	views := make([]viewmodel.VisitView, 0, len(visits))
	for _, v := range visits {
		views = append(views, viewmodel.VisitToView(v))
	}
	return views, nil
}

// Get returns a single visit with its images eager-loaded.
func (s *Service) Get(ctx context.Context, visitID int64) (*viewmodel.VisitView, error) {
	visit, err := s.repo.Get(ctx, visitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("visit", err)
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to get visit: %w", err))
	}
	view := viewmodel.VisitToView(visit)
	return &view, nil
}

func (s *Service) Add(ctx context.Context, newVisit viewmodel.VisitView) result.Result {
	if violations := validation.ValidateVisit(newVisit); len(violations) > 0 {
		return result.Failure(msgInvalid)
	}

	if err := s.repo.Create(ctx, viewmodel.VisitToModel(newVisit)); err != nil {
		return result.Failure(fmt.Sprintf("Failed to add visit: %v", err))
	}
	return result.Ok()
}

// Update applies the submitted type, date and notes to the stored visit.
func (s *Service) Update(ctx context.Context, visitID int64, updatedVisit viewmodel.VisitView) result.Result {
	if violations := validation.ValidateVisit(updatedVisit); len(violations) > 0 {
		return result.Failure(msgInvalid)
	}

	visit, err := s.repo.Get(ctx, visitID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		return result.Failure(fmt.Sprintf("Failed to update visit: %v", err))
	}

	visit.Type = updatedVisit.Type
	visit.Date = updatedVisit.Date
	visit.DoctorsNotes = updatedVisit.DoctorsNotes
	if err := s.repo.Update(ctx, visit); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		return result.Failure(fmt.Sprintf("Failed to update visit: %v", err))
	}
	return result.Ok()
}

// Delete removes the visit; image metadata cascades at the store level.
func (s *Service) Delete(ctx context.Context, visitID int64) result.Result {
	if err := s.repo.Delete(ctx, visitID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return result.Failure(msgNotFound)
		}
		return result.Failure(fmt.Sprintf("Failed to delete visit: %v", err))
	}
	return result.Ok()
}
