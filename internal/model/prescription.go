package model

import (
	"time"
)

// Prescription is a medication prescribed to a patient. DateEnding is nil
// while the prescription is active; once set it must lie strictly after
// DatePrescribed.
type Prescription struct {
	ID             int64      `db:"id" json:"id"`
	PatientID      int64      `db:"patient_id" json:"patient_id"`
	MedicationName string     `db:"medication_name" json:"medication_name"`
	DatePrescribed time.Time  `db:"date_prescribed" json:"date_prescribed"`
	DateEnding     *time.Time `db:"date_ending" json:"date_ending,omitempty"`
}
