// Package csvexport renders a patient's full record (patient fields,
// prescriptions, visits) as a sectioned CSV document for download.
package csvexport

import (
	"fmt"
	"strings"
	"time"

	"github.com/ordinacija/patients-api/internal/viewmodel"
)

const dateLayout = "2006-01-02"

// PatientRecord renders the export for one patient. Fields are quoted, with
// embedded quotes doubled, only when they contain a comma, quote, or newline.
func PatientRecord(patient viewmodel.PatientView) string {
	var b strings.Builder

	b.WriteString("PATIENT DETAILS\n")
	b.WriteString("Id,FirstName,LastName,IsMale,Oib,Birthday\n")
	fmt.Fprintf(&b, "%d,%s,%s,%t,%s,%s\n",
		patient.ID,
		escapeField(patient.FirstName),
		escapeField(patient.LastName),
		patient.IsMale,
		escapeField(patient.Oib),
		patient.Birthday.Format(dateLayout),
	)
	b.WriteString("\n")

	b.WriteString("PRESCRIPTIONS\n")
	b.WriteString("PrescriptionId,PatientId,MedicationName,DatePrescribed,DateEnding\n")
	for _, p := range patient.Prescriptions {
		ending := ""
		if p.DateEnding != nil {
			ending = p.DateEnding.Format(dateLayout)
		}
		fmt.Fprintf(&b, "%d,%d,%s,%s,%s\n",
			p.PrescriptionID,
			p.PatientID,
			escapeField(p.MedicationName),
			p.DatePrescribed.Format(dateLayout),
			ending,
		)
	}
	b.WriteString("\n")

	b.WriteString("VISITS\n")
	b.WriteString("VisitId,PatientId,Type,Date,DoctorsNotes\n")
	for _, v := range patient.Visits {
		fmt.Fprintf(&b, "%d,%d,%s,%s,%s\n",
			v.VisitID,
			v.PatientID,
			v.Type,
			v.Date.Format(dateLayout),
			escapeField(v.DoctorsNotes),
		)
	}

	return b.String()
}

// FileName builds the download name for a patient export.
func FileName(patientID int64, now time.Time) string {
	return fmt.Sprintf("patient_%d_export_%s.csv", patientID, now.Format("20060102_150405"))
}

func escapeField(field string) string {
	if field == "" {
		return ""
	}
	if strings.ContainsAny(field, ",\"\n\r") {
		return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
	}
	return field
}
