package csvexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/viewmodel"
)

func TestPatientRecord(t *testing.T) {
	ending := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	patient := viewmodel.PatientView{
		ID:        42,
		FirstName: "Ana",
		LastName:  "Kovač",
		Oib:       "12345678901",
		Birthday:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Prescriptions: []viewmodel.PrescriptionView{
			{
				PrescriptionID: 7,
				PatientID:      42,
				MedicationName: "Andol",
				DatePrescribed: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
				DateEnding:     &ending,
			},
			{
				PrescriptionID: 8,
				PatientID:      42,
				MedicationName: "Lupocet",
				DatePrescribed: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
			},
		},
		Visits: []viewmodel.VisitView{
			{
				VisitID:      9,
				PatientID:    42,
				Type:         model.VisitTypeBloodWork,
				Date:         time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
				DoctorsNotes: "All values normal, next check in a year",
			},
		},
	}

	csv := PatientRecord(patient)

	assert.Contains(t, csv, "PATIENT DETAILS\nId,FirstName,LastName,IsMale,Oib,Birthday\n")
	assert.Contains(t, csv, "42,Ana,Kovač,false,12345678901,1990-01-01\n")
	assert.Contains(t, csv, "PRESCRIPTIONS\nPrescriptionId,PatientId,MedicationName,DatePrescribed,DateEnding\n")
	assert.Contains(t, csv, "7,42,Andol,2025-05-01,2025-06-01\n")
	assert.Contains(t, csv, "8,42,Lupocet,2025-05-02,\n")
	assert.Contains(t, csv, "VISITS\nVisitId,PatientId,Type,Date,DoctorsNotes\n")
	assert.Contains(t, csv, "9,42,blood_work,2025-03-15,All values normal, next check in a year")
}

func TestPatientRecordEmptyCollections(t *testing.T) {
	patient := viewmodel.PatientView{ID: 1, FirstName: "Ana", LastName: "Kovač", Oib: "12345678901"}
	csv := PatientRecord(patient)

	// All three sections are present even without data.
	assert.Contains(t, csv, "PATIENT DETAILS")
	assert.Contains(t, csv, "PRESCRIPTIONS")
	assert.Contains(t, csv, "VISITS")
}

func TestEscapeField(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"has,comma", `"has,comma"`},
		{`has"quote`, `"has""quote"`},
		{"has\nnewline", "\"has\nnewline\""},
		{"has\rreturn", "\"has\rreturn\""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeField(tt.in), "input %q", tt.in)
	}
}

func TestEscapedNotesSurviveInDocument(t *testing.T) {
	patient := viewmodel.PatientView{
		ID: 1, FirstName: "Ana", LastName: "Kovač", Oib: "12345678901",
		Visits: []viewmodel.VisitView{
			{VisitID: 2, PatientID: 1, Type: model.VisitTypeDental, DoctorsNotes: `Pain on biting, "sharp", upper left`},
		},
	}
	csv := PatientRecord(patient)
	assert.Contains(t, csv, `"Pain on biting, ""sharp"", upper left"`)
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, 8, 27, 13, 45, 9, 0, time.UTC)
	assert.Equal(t, "patient_42_export_20250827_134509.csv", FileName(42, now))
}
