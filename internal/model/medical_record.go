package model

import (
	"time"
)

// MedicalRecord is a clinical history entry for a pet. The relation engine
// only reads these to derive has-history and last-visit flags.
type MedicalRecord struct {
	ID        string    `db:"id" json:"id"`
	PetID     string    `db:"pet_id" json:"pet_id"`
	Date      time.Time `db:"date" json:"date"`
	Diagnosis string    `db:"diagnosis" json:"diagnosis"`
	Treatment string    `db:"treatment" json:"treatment"`
	VetName   string    `db:"vet_name" json:"vet_name"`
	Notes     string    `db:"notes" json:"notes,omitempty"`
}
