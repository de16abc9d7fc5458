package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPendingPayment AppointmentStatus = "pending_payment"
	AppointmentStatusUnderReview    AppointmentStatus = "under_review"
	AppointmentStatusConfirmed      AppointmentStatus = "confirmed"
	AppointmentStatusCompleted      AppointmentStatus = "completed"
	AppointmentStatusNoShow         AppointmentStatus = "no_show"
	AppointmentStatusCancelled      AppointmentStatus = "cancelled"
	AppointmentStatusExpired        AppointmentStatus = "expired"
	AppointmentStatusRejected       AppointmentStatus = "rejected"
)

// validTransitions encodes the appointment lifecycle:
// pending_payment -> under_review -> confirmed -> completed | no_show,
// with cancellation, expiry and rejection side-exits.
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPendingPayment: {AppointmentStatusUnderReview, AppointmentStatusExpired},
	AppointmentStatusUnderReview:    {AppointmentStatusConfirmed, AppointmentStatusCancelled, AppointmentStatusExpired, AppointmentStatusRejected},
	AppointmentStatusConfirmed:      {AppointmentStatusCompleted, AppointmentStatusNoShow, AppointmentStatusCancelled},
}

// CanTransition reports whether an appointment may move from one status to another.
func (s AppointmentStatus) CanTransition(to AppointmentStatus) bool {
	for _, next := range validTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Appointment is a scheduled veterinary visit. PetID and OwnerID are loose
// references that may be empty or dangling; PetName is always present and
// serves as the fallback matching key.
type Appointment struct {
	ID               string            `db:"id" json:"id"`
	PetName          string            `db:"pet_name" json:"pet_name"`
	PetID            string            `db:"pet_id" json:"pet_id,omitempty"`
	OwnerID          string            `db:"owner_id" json:"owner_id,omitempty"`
	Species          string            `db:"species" json:"species"`
	ScheduledAt      time.Time         `db:"scheduled_at" json:"scheduled_at"`
	Status           AppointmentStatus `db:"status" json:"status"`
	VetName          string            `db:"vet_name" json:"vet_name"`
	VetID            string            `db:"vet_id" json:"vet_id,omitempty"`
	Reason           string            `db:"reason" json:"reason"`
	ConsultationType string            `db:"consultation_type" json:"consultation_type"`
	Location         string            `db:"location" json:"location"`
	Price            float64           `db:"price" json:"price"`
	Notes            string            `db:"notes" json:"notes,omitempty"`
	AdminNotes       string            `db:"admin_notes" json:"admin_notes,omitempty"`
	ReceiptRef       string            `db:"receipt_ref" json:"receipt_ref,omitempty"`
}
