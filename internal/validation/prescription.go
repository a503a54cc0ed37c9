package validation

import (
	"time"
	"unicode/utf8"

	"github.com/ordinacija/patients-api/internal/viewmodel"
)

// PrescriptionRules is the ordered rule set for submitted prescriptions.
var PrescriptionRules = []Rule[viewmodel.PrescriptionView]{
	{
		Check:   func(p viewmodel.PrescriptionView) bool { return p.MedicationName != "" },
		Message: "Medication name is required.",
	},
	{
		Check:   func(p viewmodel.PrescriptionView) bool { return utf8.RuneCountInString(p.MedicationName) <= 200 },
		Message: "Medication name cannot exceed 200 characters.",
	},
	{
		Check:   func(p viewmodel.PrescriptionView) bool { return !p.DatePrescribed.IsZero() },
		Message: "Date prescribed is required.",
	},
	{
		Check:   func(p viewmodel.PrescriptionView) bool { return !p.DatePrescribed.After(time.Now()) },
		Message: "Date prescribed cannot be in the future.",
	},
	{
		Check: func(p viewmodel.PrescriptionView) bool {
			return p.DateEnding == nil || p.DateEnding.After(p.DatePrescribed)
		},
		Message: "Date ending must be after date prescribed.",
	},
}

// ValidatePrescription returns all rule violations for p, in rule order.
func ValidatePrescription(p viewmodel.PrescriptionView) []string {
	return Evaluate(p, PrescriptionRules)
}
