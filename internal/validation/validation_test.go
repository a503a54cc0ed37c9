package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ordinacija/patients-api/internal/model"
	"github.com/ordinacija/patients-api/internal/viewmodel"
)

func validPatient() viewmodel.PatientView {
	return viewmodel.PatientView{
		FirstName: "Ana",
		LastName:  "Kovač",
		Oib:       "12345678901",
		Birthday:  time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidatePatientOK(t *testing.T) {
	assert.Empty(t, ValidatePatient(validPatient()))
}

func TestValidatePatientViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*viewmodel.PatientView)
		message string
	}{
		{"empty first name", func(p *viewmodel.PatientView) { p.FirstName = "" }, "First name is required."},
		{"long first name", func(p *viewmodel.PatientView) { p.FirstName = strings.Repeat("a", 51) }, "First name cannot exceed 50 characters."},
		{"empty last name", func(p *viewmodel.PatientView) { p.LastName = "" }, "Last name is required."},
		{"long last name", func(p *viewmodel.PatientView) { p.LastName = strings.Repeat("b", 51) }, "Last name cannot exceed 50 characters."},
		{"empty oib", func(p *viewmodel.PatientView) { p.Oib = "" }, "OIB is required."},
		{"short oib", func(p *viewmodel.PatientView) { p.Oib = "123" }, "OIB must be exactly 11 characters."},
		{"non-digit oib", func(p *viewmodel.PatientView) { p.Oib = "1234567890a" }, "OIB must contain only digits."},
		{"zero birthday", func(p *viewmodel.PatientView) { p.Birthday = time.Time{} }, "Birthday is required."},
		{"future birthday", func(p *viewmodel.PatientView) { p.Birthday = time.Now().Add(24 * time.Hour) }, "Birthday must be in the past."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(&p)
			assert.Contains(t, ValidatePatient(p), tt.message)
		})
	}
}

func TestValidatePatientLengthCountsRunes(t *testing.T) {
	// Diacritics are multi-byte in UTF-8; the bound is on characters, so a
	// 50-rune name must pass even though it is 100 bytes.
	p := validPatient()
	p.LastName = strings.Repeat("č", 50)
	assert.Empty(t, ValidatePatient(p))

	p.LastName = strings.Repeat("č", 51)
	assert.Contains(t, ValidatePatient(p), "Last name cannot exceed 50 characters.")

	p = validPatient()
	p.FirstName = strings.Repeat("ž", 50)
	assert.Empty(t, ValidatePatient(p))
}

func TestValidatePatientCollectsAllViolations(t *testing.T) {
	violations := ValidatePatient(viewmodel.PatientView{})
	// Empty first name, last name, oib (plus length/digits), and birthday
	// must all be reported together, not just the first failure.
	assert.GreaterOrEqual(t, len(violations), 4)
	assert.Equal(t, "First name is required.", violations[0])
}

func validPrescription() viewmodel.PrescriptionView {
	return viewmodel.PrescriptionView{
		MedicationName: "Andol",
		DatePrescribed: time.Now().Add(-48 * time.Hour),
	}
}

func TestValidatePrescriptionOK(t *testing.T) {
	p := validPrescription()
	assert.Empty(t, ValidatePrescription(p))

	ending := p.DatePrescribed.Add(72 * time.Hour)
	p.DateEnding = &ending
	assert.Empty(t, ValidatePrescription(p))
}

func TestValidatePrescriptionFutureDateRejected(t *testing.T) {
	p := validPrescription()
	p.DatePrescribed = time.Now().Add(24 * time.Hour)
	assert.Contains(t, ValidatePrescription(p), "Date prescribed cannot be in the future.")
}

func TestValidatePrescriptionEndingBeforePrescribed(t *testing.T) {
	p := validPrescription()
	ending := p.DatePrescribed.Add(-time.Hour)
	p.DateEnding = &ending
	assert.Contains(t, ValidatePrescription(p), "Date ending must be after date prescribed.")

	// Equal dates are rejected too, the ordering is strict.
	equal := p.DatePrescribed
	p.DateEnding = &equal
	assert.Contains(t, ValidatePrescription(p), "Date ending must be after date prescribed.")
}

func TestValidatePrescriptionEmptyMedication(t *testing.T) {
	p := validPrescription()
	p.MedicationName = ""
	assert.Contains(t, ValidatePrescription(p), "Medication name is required.")

	p.MedicationName = strings.Repeat("x", 201)
	assert.Contains(t, ValidatePrescription(p), "Medication name cannot exceed 200 characters.")

	p.MedicationName = strings.Repeat("š", 200)
	assert.Empty(t, ValidatePrescription(p))
}

func validVisit() viewmodel.VisitView {
	return viewmodel.VisitView{
		Type:         model.VisitTypeGeneralPractice,
		Date:         time.Now().Add(-time.Hour),
		DoctorsNotes: "All fine.",
	}
}

func TestValidateVisitOK(t *testing.T) {
	assert.Empty(t, ValidateVisit(validVisit()))
}

func TestValidateVisitViolations(t *testing.T) {
	v := validVisit()
	v.Type = "acupuncture"
	assert.Contains(t, ValidateVisit(v), "Visit type is required.")

	v = validVisit()
	v.Date = time.Now().Add(24 * time.Hour)
	assert.Contains(t, ValidateVisit(v), "Visit date cannot be in the future.")

	v = validVisit()
	v.Date = time.Time{}
	assert.Contains(t, ValidateVisit(v), "Visit date is required.")

	v = validVisit()
	v.DoctorsNotes = ""
	assert.Contains(t, ValidateVisit(v), "Doctor's notes are required.")

	v = validVisit()
	v.DoctorsNotes = strings.Repeat("n", MaxDoctorsNotesLength+1)
	assert.Contains(t, ValidateVisit(v), "Doctor's notes cannot exceed 4096 characters.")
}

func TestValidateVisitNotesAtBound(t *testing.T) {
	v := validVisit()
	v.DoctorsNotes = strings.Repeat("n", MaxDoctorsNotesLength)
	assert.Empty(t, ValidateVisit(v))

	v.DoctorsNotes = strings.Repeat("đ", MaxDoctorsNotesLength)
	assert.Empty(t, ValidateVisit(v))
}

func TestEveryVisitTypeRecognized(t *testing.T) {
	assert.Len(t, model.VisitTypes, 13)
	for _, vt := range model.VisitTypes {
		v := validVisit()
		v.Type = vt
		assert.Empty(t, ValidateVisit(v), "type %s should validate", vt)
	}
}
