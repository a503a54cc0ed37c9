package validation

import (
	"time"
	"unicode/utf8"

	"github.com/ordinacija/patients-api/internal/viewmodel"
)

// MaxDoctorsNotesLength bounds the free-text clinical notes of a visit.
const MaxDoctorsNotesLength = 4096

// VisitRules is the ordered rule set for submitted visits.
var VisitRules = []Rule[viewmodel.VisitView]{
	{
		Check:   func(v viewmodel.VisitView) bool { return v.Type.IsValid() },
		Message: "Visit type is required.",
	},
	{
		Check:   func(v viewmodel.VisitView) bool { return !v.Date.IsZero() },
		Message: "Visit date is required.",
	},
	{
		Check:   func(v viewmodel.VisitView) bool { return !v.Date.After(time.Now()) },
		Message: "Visit date cannot be in the future.",
	},
	{
		Check:   func(v viewmodel.VisitView) bool { return v.DoctorsNotes != "" },
		Message: "Doctor's notes are required.",
	},
	{
		Check: func(v viewmodel.VisitView) bool {
			return utf8.RuneCountInString(v.DoctorsNotes) <= MaxDoctorsNotesLength
		},
		Message: "Doctor's notes cannot exceed 4096 characters.",
	},
}

// ValidateVisit returns all rule violations for v, in rule order.
func ValidateVisit(v viewmodel.VisitView) []string {
	return Evaluate(v, VisitRules)
}
