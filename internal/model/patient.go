package model

import (
	"time"
)

// Patient is a registered patient of the practice. Oib is the unique
// 11-digit national identifier; the database enforces uniqueness with an
// index, which is also the backstop against concurrent duplicate inserts.
type Patient struct {
	ID        int64     `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	IsMale    bool      `db:"is_male" json:"is_male"`
	Oib       string    `db:"oib" json:"oib"`
	Birthday  time.Time `db:"birthday" json:"birthday"`

	// Loaded eagerly on single-patient reads, never persisted through
	// the patient itself.
	Prescriptions []*Prescription `db:"-" json:"prescriptions,omitempty"`
	Visits        []*Visit        `db:"-" json:"visits,omitempty"`
}
