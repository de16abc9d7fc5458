package query

import (
	"time"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

// Stats are aggregate counts over a set of relation records.
type Stats struct {
	Total          int            `json:"total"`
	Today          int            `json:"today"`
	Upcoming       int            `json:"upcoming"`
	Pending        int            `json:"pending"`
	Completed      int            `json:"completed"`
	HighUrgency    int            `json:"high_urgency"`
	NextSevenDays  int            `json:"next_seven_days"`
	MissingOwner   int            `json:"missing_owner"`
	MissingPet     int            `json:"missing_pet"`
	BySpecies      map[string]int `json:"by_species"`
	DistinctOwners int            `json:"distinct_owners"`
	DistinctPets   int            `json:"distinct_pets"`
}

// ComputeStats aggregates everything in a single pass; nothing is cached.
func ComputeStats(records []model.RelationRecord, now time.Time) Stats {
	stats := Stats{
		Total:     len(records),
		BySpecies: map[string]int{},
	}

	owners := map[string]struct{}{}
	pets := map[string]struct{}{}
	weekEnd := now.Add(7 * 24 * time.Hour)

	for _, rec := range records {
		apt := rec.Appointment

		if sameDay(apt.ScheduledAt, now) {
			stats.Today++
		}
		if apt.ScheduledAt.After(now) {
			if apt.Status == model.AppointmentStatusConfirmed || apt.Status == model.AppointmentStatusUnderReview {
				stats.Upcoming++
			}
			if apt.ScheduledAt.Before(weekEnd) {
				stats.NextSevenDays++
			}
		}
		if apt.Status == model.AppointmentStatusUnderReview || apt.Status == model.AppointmentStatusPendingPayment {
			stats.Pending++
		}
		if apt.Status == model.AppointmentStatusCompleted {
			stats.Completed++
		}
		if rec.Urgency == model.UrgencyHigh {
			stats.HighUrgency++
		}

		if rec.Pet == nil {
			stats.MissingPet++
		} else {
			pets[rec.Pet.ID] = struct{}{}
		}
		if rec.Owner == nil {
			stats.MissingOwner++
		} else {
			owners[rec.Owner.ID] = struct{}{}
		}

		if species := recordSpecies(rec); species != "" {
			stats.BySpecies[species]++
		}
	}

	stats.DistinctOwners = len(owners)
	stats.DistinctPets = len(pets)
	return stats
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
