package resolver

import (
	"strings"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

// ResolvePet resolves an appointment to a pet through an ordered fallback
// chain; the first strategy that yields a hit wins and later strategies are
// not attempted:
//
//	1. exact id match on the appointment's pet reference
//	2. case-sensitive name match
//	3. case-insensitive name match
//	4. bidirectional substring containment on name, case-insensitive
//
// Ties within a strategy resolve to the first pet in input order. Returns
// nil when nothing matches; a missing pet is an expected state, not an
// error.
func ResolvePet(apt model.Appointment, pets []model.Pet) *model.Pet {
	if apt.PetID != "" {
		for i := range pets {
			if pets[i].ID == apt.PetID {
				p := pets[i]
				return &p
			}
		}
	}

	for i := range pets {
		if pets[i].Name == apt.PetName {
			p := pets[i]
			return &p
		}
	}

	for i := range pets {
		if strings.EqualFold(pets[i].Name, apt.PetName) {
			p := pets[i]
			return &p
		}
	}

	target := strings.ToLower(apt.PetName)
	if target == "" {
		return nil
	}
	for i := range pets {
		name := strings.ToLower(pets[i].Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, target) || strings.Contains(target, name) {
			p := pets[i]
			return &p
		}
	}

	return nil
}

// ResolveOwner resolves the owning client for an appointment, preferring the
// appointment's own client reference, then the resolved pet's ownership
// edge. As a last resort it guesses: the first client in input order who
// owns another pet of the same species. The guessed flag marks that
// heuristic result so callers never present it as authoritative.
func ResolveOwner(apt model.Appointment, pet *model.Pet, owners []model.Owner, pets []model.Pet) (*model.Owner, bool) {
	if apt.OwnerID != "" {
		for i := range owners {
			if owners[i].ID == apt.OwnerID && owners[i].IsClient() {
				o := owners[i]
				return &o, false
			}
		}
	}

	if pet == nil {
		return nil, false
	}

	for i := range owners {
		if owners[i].ID == pet.OwnerID {
			o := owners[i]
			return &o, false
		}
	}

	for i := range owners {
		if !owners[i].IsClient() {
			continue
		}
		if ownsSpecies(owners[i].ID, pet, pets) {
			o := owners[i]
			return &o, true
		}
	}

	return nil, false
}

func ownsSpecies(ownerID string, pet *model.Pet, pets []model.Pet) bool {
	for i := range pets {
		if pets[i].ID == pet.ID || pets[i].OwnerID != ownerID {
			continue
		}
		if strings.EqualFold(pets[i].Species, pet.Species) {
			return true
		}
	}
	return false
}
