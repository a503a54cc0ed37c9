// Package memory provides in-memory implementations of the repository
// interfaces for tests and development. They mirror the store-level behavior
// the postgres implementations rely on: cascade deletes along the
// patient→visit→image ownership chain and the unique index on oib.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/repository"
)

// Store holds all four entity tables behind one lock.
type Store struct {
	mu            sync.RWMutex
	nextID        int64
	patients      map[int64]*model.Patient
	prescriptions map[int64]*model.Prescription
	visits        map[int64]*model.Visit
	images        map[int64]*model.Image

	// FailNext, when set, makes the next mutating call fail with the given
	// error. Used to exercise partial-failure paths.
	FailNext error
}

func NewStore() *Store {
	return &Store{
		patients:      make(map[int64]*model.Patient),
		prescriptions: make(map[int64]*model.Prescription),
		visits:        make(map[int64]*model.Visit),
		images:        make(map[int64]*model.Image),
	}
}

func (s *Store) Patients() repository.PatientRepository           { return (*patientRepo)(s) }
func (s *Store) Prescriptions() repository.PrescriptionRepository { return (*prescriptionRepo)(s) }
func (s *Store) Visits() repository.VisitRepository               { return (*visitRepo)(s) }
func (s *Store) Images() repository.ImageRepository               { return (*imageRepo)(s) }

func (s *Store) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

// --- patients ---

type patientRepo Store

func (r *patientRepo) List(context.Context) ([]*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	patients := make([]*model.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		clone := *p
		patients = append(patients, &clone)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].ID < patients[j].ID })
	return patients, nil
}

func (r *patientRepo) Get(ctx context.Context, id int64) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	clone.Prescriptions = (*Store)(r).prescriptionsOf(id)
	clone.Visits = (*Store)(r).visitsOf(id)
	return &clone, nil
}

func (r *patientRepo) GetByOib(ctx context.Context, oib string) (*model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if p.Oib == oib {
			clone := *p
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *patientRepo) ExistsByOib(ctx context.Context, oib string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if p.Oib == oib {
			return true, nil
		}
	}
	return false, nil
}

func (r *patientRepo) Create(ctx context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	for _, p := range r.patients {
		if p.Oib == patient.Oib {
			return repository.ErrDuplicateOib
		}
	}
	patient.ID = (*Store)(r).allocID()
	clone := *patient
	r.patients[patient.ID] = &clone
	return nil
}

func (r *patientRepo) Update(ctx context.Context, patient *model.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	if _, ok := r.patients[patient.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, p := range r.patients {
		if p.Oib == patient.Oib && p.ID != patient.ID {
			return repository.ErrDuplicateOib
		}
	}
	clone := *patient
	clone.Prescriptions = nil
	clone.Visits = nil
	r.patients[patient.ID] = &clone
	return nil
}

func (r *patientRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	if _, ok := r.patients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.patients, id)
	// Cascade: prescriptions and visits of the patient, and images of the
	// cascaded visits.
	for pid, p := range r.prescriptions {
		if p.PatientID == id {
			delete(r.prescriptions, pid)
		}
	}
	for vid, v := range r.visits {
		if v.PatientID == id {
			(*Store)(r).dropVisitLocked(vid)
		}
	}
	return nil
}

// --- prescriptions ---

type prescriptionRepo Store

func (r *prescriptionRepo) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return (*Store)(r).prescriptionsOf(patientID), nil
}

func (r *prescriptionRepo) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.prescriptions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *prescriptionRepo) Create(ctx context.Context, prescription *model.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	prescription.ID = (*Store)(r).allocID()
	clone := *prescription
	r.prescriptions[prescription.ID] = &clone
	return nil
}

func (r *prescriptionRepo) UpdateEnding(ctx context.Context, prescription *model.Prescription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	stored, ok := r.prescriptions[prescription.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.DateEnding = prescription.DateEnding
	return nil
}

func (r *prescriptionRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	if _, ok := r.prescriptions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.prescriptions, id)
	return nil
}

// --- visits ---

type visitRepo Store

func (r *visitRepo) ListByPatient(ctx context.Context, patientID int64) ([]*model.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return (*Store)(r).visitsOf(patientID), nil
}

func (r *visitRepo) Get(ctx context.Context, id int64) (*model.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.visits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *v
	clone.Images = (*Store)(r).imagesOf(id)
	return &clone, nil
}

func (r *visitRepo) Create(ctx context.Context, visit *model.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	visit.ID = (*Store)(r).allocID()
	clone := *visit
	clone.Images = nil
	r.visits[visit.ID] = &clone
	return nil
}

func (r *visitRepo) Update(ctx context.Context, visit *model.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	stored, ok := r.visits[visit.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Type = visit.Type
	stored.Date = visit.Date
	stored.DoctorsNotes = visit.DoctorsNotes
	return nil
}

func (r *visitRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	if _, ok := r.visits[id]; !ok {
		return repository.ErrNotFound
	}
	(*Store)(r).dropVisitLocked(id)
	return nil
}

// --- images ---

type imageRepo Store

func (r *imageRepo) ListByVisit(ctx context.Context, visitID int64) ([]*model.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return (*Store)(r).imagesOf(visitID), nil
}

func (r *imageRepo) Get(ctx context.Context, id int64) (*model.Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.images[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *imageRepo) Create(ctx context.Context, image *model.Image) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	image.ID = (*Store)(r).allocID()
	clone := *image
	r.images[image.ID] = &clone
	return nil
}

func (r *imageRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := (*Store)(r).takeFailure(); err != nil {
		return err
	}
	if _, ok := r.images[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.images, id)
	return nil
}

// --- shared lookups, caller must hold the lock ---

func (s *Store) prescriptionsOf(patientID int64) []*model.Prescription {
	prescriptions := []*model.Prescription{}
	for _, p := range s.prescriptions {
		if p.PatientID == patientID {
			clone := *p
			prescriptions = append(prescriptions, &clone)
		}
	}
	sort.Slice(prescriptions, func(i, j int) bool { return prescriptions[i].ID < prescriptions[j].ID })
	return prescriptions
}

func (s *Store) visitsOf(patientID int64) []*model.Visit {
	visits := []*model.Visit{}
	for _, v := range s.visits {
		if v.PatientID == patientID {
			clone := *v
			clone.Images = s.imagesOf(v.ID)
			visits = append(visits, &clone)
		}
	}
	sort.Slice(visits, func(i, j int) bool { return visits[i].ID < visits[j].ID })
	return visits
}

func (s *Store) imagesOf(visitID int64) []*model.Image {
	images := []*model.Image{}
	for _, img := range s.images {
		if img.VisitID == visitID {
			clone := *img
			images = append(images, &clone)
		}
	}
	sort.Slice(images, func(i, j int) bool { return images[i].ID < images[j].ID })
	return images
}

func (s *Store) dropVisitLocked(visitID int64) {
	delete(s.visits, visitID)
	for iid, img := range s.images {
		if img.VisitID == visitID {
			delete(s.images, iid)
		}
	}
}
