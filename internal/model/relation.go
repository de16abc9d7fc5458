package model

import (
	"time"
)

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Rank orders urgencies for sorting: high before medium before low.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 0
	case UrgencyMedium:
		return 1
	default:
		return 2
	}
}

// RelationRecord is the denormalized view joining an appointment to its
// resolved pet and owner. It is derived fresh on every enrichment call and
// never cached; Pet and Owner are nil when resolution failed. OwnerGuessed
// marks an owner found through the species fallback heuristic, which is a
// best-effort guess and must not be presented as authoritative.
type RelationRecord struct {
	Appointment  Appointment `json:"appointment"`
	Pet          *Pet        `json:"pet,omitempty"`
	Owner        *Owner      `json:"owner,omitempty"`
	OwnerGuessed bool        `json:"owner_guessed,omitempty"`
	Urgency      Urgency     `json:"urgency"`
	HasHistory   bool        `json:"has_history"`
	LastVisit    *time.Time  `json:"last_visit,omitempty"`
}

// IntegrityIssue classifies a referential defect found for an appointment.
type IntegrityIssue string

const (
	IssuePetNotFound       IntegrityIssue = "pet_not_found"
	IssueOwnerNotFound     IntegrityIssue = "owner_not_found"
	IssueOwnershipMismatch IntegrityIssue = "ownership_mismatch"
)

// IntegrityEntry is one invalid or fixable appointment together with the
// defect that put it there and, for fixable entries, a suggested fix.
type IntegrityEntry struct {
	Appointment  Appointment    `json:"appointment"`
	Issue        IntegrityIssue `json:"issue"`
	Detail       string         `json:"detail"`
	SuggestedFix string         `json:"suggested_fix,omitempty"`
}

// IntegrityReport partitions a set of appointments. Every input appointment
// appears in exactly one of the three lists.
type IntegrityReport struct {
	Valid   []RelationRecord `json:"valid"`
	Invalid []IntegrityEntry `json:"invalid"`
	Fixable []IntegrityEntry `json:"fixable"`
}

// AppliedFix is one entry of the structured repair audit trail.
type AppliedFix struct {
	AppointmentID string `json:"appointment_id"`
	PetName       string `json:"pet_name"`
	Action        string `json:"action"`
	Detail        string `json:"detail"`
}

// RepairResult bundles the output of an auto-repair run. Appointments are
// always passed through unchanged; repairs only create or modify pets.
type RepairResult struct {
	FixedAppointments []Appointment `json:"fixed_appointments"`
	FixedPets         []Pet         `json:"fixed_pets"`
	NewPets           []Pet         `json:"new_pets"`
	AppliedFixes      []AppliedFix  `json:"applied_fixes"`
	Errors            []string      `json:"errors"`
}
