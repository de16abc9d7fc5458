package query

import (
	"strings"
	"time"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

// CriteriaAll is the sentinel that disables a string criterion, matching
// the "all" option of the UI filter dropdowns. An empty value disables too.
const CriteriaAll = "all"

// Criteria are AND-combined; any disabled criterion is skipped.
type Criteria struct {
	OwnerID string
	Species string
	Urgency string
	Status  string
	VetName string
	From    *time.Time
	To      *time.Time
	Search  string
}

func active(v string) bool {
	return v != "" && !strings.EqualFold(v, CriteriaAll)
}

// Filter returns the records matching every active criterion, preserving
// input order. The date range is inclusive on both ends.
func Filter(records []model.RelationRecord, c Criteria) []model.RelationRecord {
	out := make([]model.RelationRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec model.RelationRecord, c Criteria) bool {
	if active(c.OwnerID) && (rec.Owner == nil || rec.Owner.ID != c.OwnerID) {
		return false
	}
	if active(c.Species) && !strings.EqualFold(recordSpecies(rec), c.Species) {
		return false
	}
	if active(c.Urgency) && !strings.EqualFold(string(rec.Urgency), c.Urgency) {
		return false
	}
	if active(c.Status) && !strings.EqualFold(string(rec.Appointment.Status), c.Status) {
		return false
	}
	if active(c.VetName) && !strings.EqualFold(rec.Appointment.VetName, c.VetName) {
		return false
	}
	if c.From != nil && rec.Appointment.ScheduledAt.Before(*c.From) {
		return false
	}
	if c.To != nil && rec.Appointment.ScheduledAt.After(*c.To) {
		return false
	}
	if active(c.Search) && !matchesSearch(rec, c.Search) {
		return false
	}
	return true
}

// matchesSearch checks the free-text term against pet name, reason, species,
// breed and the owner's name, phone and email.
func matchesSearch(rec model.RelationRecord, term string) bool {
	needle := strings.ToLower(term)

	haystacks := []string{
		rec.Appointment.PetName,
		rec.Appointment.Reason,
		rec.Appointment.Species,
	}
	if rec.Pet != nil {
		haystacks = append(haystacks, rec.Pet.Name, rec.Pet.Species, rec.Pet.Breed)
	}
	if rec.Owner != nil {
		haystacks = append(haystacks, rec.Owner.Name, rec.Owner.Phone, rec.Owner.Email)
	}

	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// recordSpecies prefers the resolved pet's species over the appointment's
// denormalized copy.
func recordSpecies(rec model.RelationRecord) string {
	if rec.Pet != nil && rec.Pet.Species != "" {
		return rec.Pet.Species
	}
	return rec.Appointment.Species
}
