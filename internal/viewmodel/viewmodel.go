// Package viewmodel holds the transfer shapes used at the presentation
// boundary and their conversions to and from the persisted entities.
// Conversions are pure and total: entity→view only drops back references and
// maps absent collections to empty slices; view→entity fills the scalar
// fields and leaves collections to be populated by eager-loading reads.
package viewmodel

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordinacija/patients-api/internal/model"
)

// PatientView is the boundary shape of a patient, including its owned
// prescriptions and visits when they were eager-loaded.
type PatientView struct {
	ID            int64              `json:"id"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	IsMale        bool               `json:"is_male"`
	Oib           string             `json:"oib"`
	Birthday      time.Time          `json:"birthday"`
	Prescriptions []PrescriptionView `json:"prescriptions"`
	Visits        []VisitView        `json:"visits"`
}

type PrescriptionView struct {
	PrescriptionID int64      `json:"prescription_id"`
	PatientID      int64      `json:"patient_id"`
	MedicationName string     `json:"medication_name"`
	DatePrescribed time.Time  `json:"date_prescribed"`
	DateEnding     *time.Time `json:"date_ending,omitempty"`
}

type VisitView struct {
	VisitID      int64           `json:"visit_id"`
	PatientID    int64           `json:"patient_id"`
	Type         model.VisitType `json:"type"`
	Date         time.Time       `json:"date"`
	DoctorsNotes string          `json:"doctors_notes"`
	Images       []ImageView     `json:"images"`
}

type ImageView struct {
	ID      int64     `json:"id"`
	GUID    uuid.UUID `json:"guid"`
	FileExt string    `json:"file_ext"`
	VisitID int64     `json:"visit_id"`
}

func PatientToView(p *model.Patient) PatientView {
	view := PatientView{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		IsMale:        p.IsMale,
		Oib:           p.Oib,
		Birthday:      p.Birthday,
		Prescriptions: make([]PrescriptionView, 0, len(p.Prescriptions)),
		Visits:        make([]VisitView, 0, len(p.Visits)),
	}
	for _, pr := range p.Prescriptions {
		view.Prescriptions = append(view.Prescriptions, PrescriptionToView(pr))
	}
	for _, v := range p.Visits {
		view.Visits = append(view.Visits, VisitToView(v))
	}
	return view
}

func PatientToModel(v PatientView) *model.Patient {
	return &model.Patient{
		ID:        v.ID,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		IsMale:    v.IsMale,
		Oib:       v.Oib,
		Birthday:  v.Birthday,
	}
}

func PrescriptionToView(p *model.Prescription) PrescriptionView {
	return PrescriptionView{
		PrescriptionID: p.ID,
		PatientID:      p.PatientID,
		MedicationName: p.MedicationName,
		DatePrescribed: p.DatePrescribed,
		DateEnding:     p.DateEnding,
	}
}

func PrescriptionToModel(v PrescriptionView) *model.Prescription {
	return &model.Prescription{
		ID:             v.PrescriptionID,
		PatientID:      v.PatientID,
		MedicationName: v.MedicationName,
		DatePrescribed: v.DatePrescribed,
		DateEnding:     v.DateEnding,
	}
}

func VisitToView(v *model.Visit) VisitView {
	view := VisitView{
		VisitID:      v.ID,
		PatientID:    v.PatientID,
		Type:         v.Type,
		Date:         v.Date,
		DoctorsNotes: v.DoctorsNotes,
		Images:       make([]ImageView, 0, len(v.Images)),
	}
	for _, img := range v.Images {
		view.Images = append(view.Images, ImageToView(img))
	}
	return view
}

func VisitToModel(view VisitView) *model.Visit {
	return &model.Visit{
		ID:           view.VisitID,
		PatientID:    view.PatientID,
		Type:         view.Type,
		Date:         view.Date,
		DoctorsNotes: view.DoctorsNotes,
	}
}

func ImageToView(i *model.Image) ImageView {
	return ImageView{
		ID:      i.ID,
		GUID:    i.ImageGUID,
		FileExt: i.FileExt,
		VisitID: i.VisitID,
	}
}

func ImageToModel(v ImageView) *model.Image {
	return &model.Image{
		ID:        v.ID,
		ImageGUID: v.GUID,
		FileExt:   v.FileExt,
		VisitID:   v.VisitID,
	}
}
