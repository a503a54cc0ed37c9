package model

import (
	"time"
)

// VisitType enumerates the recognized kinds of clinical visits.
type VisitType string

const (
	VisitTypeGeneralPractice VisitType = "general_practice"
	VisitTypeBloodWork       VisitType = "blood_work"
	VisitTypeXRay            VisitType = "x_ray"
	VisitTypeCT              VisitType = "ct"
	VisitTypeMR              VisitType = "mr"
	VisitTypeUltrasound      VisitType = "ultrasound"
	VisitTypeECG             VisitType = "ecg"
	VisitTypeEchocardiogram  VisitType = "echocardiogram"
	VisitTypeEyeExam         VisitType = "eye_exam"
	VisitTypeDermatology     VisitType = "dermatology"
	VisitTypeDental          VisitType = "dental"
	VisitTypeMammography     VisitType = "mammography"
	VisitTypeNeurology       VisitType = "neurology"
)

// VisitTypes lists every recognized visit type, in display order.
var VisitTypes = []VisitType{
	VisitTypeGeneralPractice,
	VisitTypeBloodWork,
	VisitTypeXRay,
	VisitTypeCT,
	VisitTypeMR,
	VisitTypeUltrasound,
	VisitTypeECG,
	VisitTypeEchocardiogram,
	VisitTypeEyeExam,
	VisitTypeDermatology,
	VisitTypeDental,
	VisitTypeMammography,
	VisitTypeNeurology,
}

// IsValid reports whether t is a recognized visit type.
func (t VisitType) IsValid() bool {
	for _, vt := range VisitTypes {
		if t == vt {
			return true
		}
	}
	return false
}

// Visit is a clinical visit of a patient. Images are loaded eagerly on
// single-visit reads and per-patient listings.
type Visit struct {
	ID           int64     `db:"id" json:"id"`
	PatientID    int64     `db:"patient_id" json:"patient_id"`
	Type         VisitType `db:"type" json:"type"`
	Date         time.Time `db:"date" json:"date"`
	DoctorsNotes string    `db:"doctors_notes" json:"doctors_notes"`

	Images []*Image `db:"-" json:"images,omitempty"`
}
