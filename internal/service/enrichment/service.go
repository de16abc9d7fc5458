package enrichment

import (
	"time"

	"github.com/jwalitptl/vetclinic-core/internal/model"
	"github.com/jwalitptl/vetclinic-core/internal/service/resolver"
	"github.com/jwalitptl/vetclinic-core/internal/service/triage"
)

// Service joins appointments to their resolved pet, owner, triage level and
// clinical-history flags. It holds no state between calls; every call is a
// pure function of the snapshots it receives (plus the clock term used by
// triage).
type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Enrich builds the denormalized relation record for one appointment.
// Input slices are never mutated.
func (s *Service) Enrich(apt model.Appointment, pets []model.Pet, owners []model.Owner, records []model.MedicalRecord) model.RelationRecord {
	pet := resolver.ResolvePet(apt, pets)
	owner, guessed := resolver.ResolveOwner(apt, pet, owners, pets)

	rec := model.RelationRecord{
		Appointment:  apt,
		Pet:          pet,
		Owner:        owner,
		OwnerGuessed: guessed,
		Urgency:      triage.Classify(apt.Reason, apt.ScheduledAt, s.now()),
	}

	if pet == nil {
		return rec
	}

	for i := range records {
		if records[i].PetID != pet.ID {
			continue
		}
		rec.HasHistory = true
		if rec.LastVisit == nil || records[i].Date.After(*rec.LastVisit) {
			d := records[i].Date
			rec.LastVisit = &d
		}
	}

	return rec
}

// EnrichAll enriches every appointment, preserving input order.
func (s *Service) EnrichAll(apts []model.Appointment, pets []model.Pet, owners []model.Owner, records []model.MedicalRecord) []model.RelationRecord {
	out := make([]model.RelationRecord, 0, len(apts))
	for _, apt := range apts {
		out = append(out, s.Enrich(apt, pets, owners, records))
	}
	return out
}
