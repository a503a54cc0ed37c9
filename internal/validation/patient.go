package validation

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/ordinacija/patients-api/internal/viewmodel"
)

var oibPattern = regexp.MustCompile(`^\d{11}$`)

// PatientRules is the ordered rule set for submitted patients.
var PatientRules = []Rule[viewmodel.PatientView]{
	{
		Check:   func(p viewmodel.PatientView) bool { return p.FirstName != "" },
		Message: "First name is required.",
	},
	{
		Check:   func(p viewmodel.PatientView) bool { return utf8.RuneCountInString(p.FirstName) <= 50 },
		Message: "First name cannot exceed 50 characters.",
	},
	{
		Check:   func(p viewmodel.PatientView) bool { return p.LastName != "" },
		Message: "Last name is required.",
	},
	{
		Check:   func(p viewmodel.PatientView) bool { return utf8.RuneCountInString(p.LastName) <= 50 },
		Message: "Last name cannot exceed 50 characters.",
	},
	{
		Check:   func(p viewmodel.PatientView) bool { return p.Oib != "" },
		Message: "OIB is required.",
	},
	{
		Check:   func(p viewmodel.PatientView) bool { return len(p.Oib) == 11 },
		Message: "OIB must be exactly 11 characters.",
	},
	{
		Check:   func(p viewmodel.PatientView) bool { return oibPattern.MatchString(p.Oib) },
		Message: "OIB must contain only digits.",
	},
	{
		Check:   func(p viewmodel.PatientView) bool { return !p.Birthday.IsZero() },
		Message: "Birthday is required.",
	},
	{
		Check:   func(p viewmodel.PatientView) bool { return p.Birthday.Before(time.Now()) },
		Message: "Birthday must be in the past.",
	},
}

// ValidatePatient returns all rule violations for p, in rule order.
func ValidatePatient(p viewmodel.PatientView) []string {
	return Evaluate(p, PatientRules)
}
