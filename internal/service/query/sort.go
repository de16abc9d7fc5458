package query

import (
	"sort"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

type SortKey string

const (
	SortDateAsc   SortKey = "date_asc"
	SortDateDesc  SortKey = "date_desc"
	SortUrgency   SortKey = "urgency"
	SortPetName   SortKey = "pet_name"
	SortOwnerName SortKey = "owner_name"
)

// ownerSentinel sorts after every real owner name so unresolved owners land
// at the end of owner-name ordering.
const ownerSentinel = "\uffff"

// Sort returns a sorted copy of records; the input slice is left untouched.
// All orderings are stable: ties keep their original relative order.
func Sort(records []model.RelationRecord, key SortKey) []model.RelationRecord {
	out := make([]model.RelationRecord, len(records))
	copy(out, records)

	switch key {
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Appointment.ScheduledAt.Before(out[j].Appointment.ScheduledAt)
		})
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Appointment.ScheduledAt.After(out[j].Appointment.ScheduledAt)
		})
	case SortUrgency:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Urgency.Rank() < out[j].Urgency.Rank()
		})
	case SortPetName:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Appointment.PetName < out[j].Appointment.PetName
		})
	case SortOwnerName:
		sort.SliceStable(out, func(i, j int) bool {
			return ownerName(out[i]) < ownerName(out[j])
		})
	}

	return out
}

func ownerName(rec model.RelationRecord) string {
	if rec.Owner == nil {
		return ownerSentinel
	}
	return rec.Owner.Name
}
