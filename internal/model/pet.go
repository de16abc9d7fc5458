package model

import (
	"time"
)

type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet is an animal patient. OwnerID is the single ownership edge in the
// model and may dangle when the owning client was deleted.
type Pet struct {
	ID              string     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Species         string     `db:"species" json:"species"`
	Breed           string     `db:"breed" json:"breed"`
	Sex             Sex        `db:"sex" json:"sex"`
	BirthDate       time.Time  `db:"birth_date" json:"birth_date"`
	OwnerID         string     `db:"owner_id" json:"owner_id"`
	NextAppointment *time.Time `db:"next_appointment" json:"next_appointment,omitempty"`
	LastVaccineDate *time.Time `db:"last_vaccine_date" json:"last_vaccine_date,omitempty"`
	Photo           string     `db:"photo" json:"photo,omitempty"`
}
