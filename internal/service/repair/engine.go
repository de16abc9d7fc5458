package repair

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/vetclinic-core/internal/model"
	"github.com/jwalitptl/vetclinic-core/internal/service/resolver"
	"github.com/jwalitptl/vetclinic-core/pkg/logger"
)

// SynthesizedBirthDate is the sentinel birth date given to pets created by
// auto-repair, so they remain recognizable as synthesized records.
var SynthesizedBirthDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	actionSynthesizePet = "synthesize_pet"
	actionReassignOwner = "reassign_owner"
)

// Engine applies deterministic corrective actions: it synthesizes pets that
// appointments reference by name only, and reassigns dangling ownership
// edges to the first available client. It never guesses among multiple
// plausible owners beyond that single-candidate rule; ambiguous cases are
// left for the integrity report.
type Engine struct {
	log *logger.Logger

	// newID is injectable for deterministic tests.
	newID func() string
}

func NewEngine(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Engine{log: log, newID: uuid.NewString}
}

// AutoFix runs the repair policy once per appointment in input order. Input
// slices are never mutated; all corrections are returned as new copies that
// the caller must explicitly commit. Appointments always pass through
// unchanged and in full.
func (e *Engine) AutoFix(apts []model.Appointment, pets []model.Pet, owners []model.Owner) model.RepairResult {
	result := model.RepairResult{
		FixedAppointments: make([]model.Appointment, 0, len(apts)),
		FixedPets:         []model.Pet{},
		NewPets:           []model.Pet{},
		AppliedFixes:      []model.AppliedFix{},
		Errors:            []string{},
	}

	// Working copy: pets synthesized or fixed earlier in the run must be
	// visible to later appointments.
	working := make([]model.Pet, len(pets))
	copy(working, pets)

	firstClient := ""
	for i := range owners {
		if owners[i].IsClient() {
			firstClient = owners[i].ID
			break
		}
	}

	fixedIdx := map[string]int{}

	for _, apt := range apts {
		result.FixedAppointments = append(result.FixedAppointments, apt)

		pet := resolver.ResolvePet(apt, working)
		if pet == nil {
			if firstClient == "" {
				result.Errors = append(result.Errors,
					fmt.Sprintf("cannot create pet %q for appointment %s: no client owner available", apt.PetName, apt.ID))
				continue
			}
			created := e.synthesizePet(apt, firstClient)
			working = append(working, created)
			result.NewPets = append(result.NewPets, created)
			result.AppliedFixes = append(result.AppliedFixes, model.AppliedFix{
				AppointmentID: apt.ID,
				PetName:       apt.PetName,
				Action:        actionSynthesizePet,
				Detail:        fmt.Sprintf("created pet %s (%s) for owner %s", created.ID, created.Species, firstClient),
			})
			e.log.Info("synthesized missing pet",
				"appointment_id", apt.ID, "pet_id", created.ID, "pet_name", created.Name)
			continue
		}

		if ownerExists(pet.OwnerID, owners) {
			continue
		}

		if firstClient == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("cannot reassign pet %q for appointment %s: no client owner available", pet.Name, apt.ID))
			continue
		}

		fixed := *pet
		fixed.OwnerID = firstClient
		if idx, ok := fixedIdx[fixed.ID]; ok {
			result.FixedPets[idx] = fixed
		} else {
			fixedIdx[fixed.ID] = len(result.FixedPets)
			result.FixedPets = append(result.FixedPets, fixed)
		}
		for i := range working {
			if working[i].ID == fixed.ID {
				working[i] = fixed
				break
			}
		}
		result.AppliedFixes = append(result.AppliedFixes, model.AppliedFix{
			AppointmentID: apt.ID,
			PetName:       pet.Name,
			Action:        actionReassignOwner,
			Detail:        fmt.Sprintf("reassigned pet %s from %q to owner %s", fixed.ID, pet.OwnerID, firstClient),
		})
		e.log.Info("reassigned dangling pet owner",
			"appointment_id", apt.ID, "pet_id", fixed.ID, "owner_id", firstClient)
	}

	return result
}

func (e *Engine) synthesizePet(apt model.Appointment, ownerID string) model.Pet {
	species := apt.Species
	if species == "" {
		species = "unspecified"
	}
	return model.Pet{
		ID:        e.newID(),
		Name:      apt.PetName,
		Species:   species,
		Breed:     "unknown",
		Sex:       model.SexUnknown,
		BirthDate: SynthesizedBirthDate,
		OwnerID:   ownerID,
	}
}

func ownerExists(id string, owners []model.Owner) bool {
	for i := range owners {
		if owners[i].ID == id {
			return true
		}
	}
	return false
}
