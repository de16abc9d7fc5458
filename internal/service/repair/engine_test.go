package repair

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

func newTestEngine() *Engine {
	e := NewEngine(nil)
	n := 0
	e.newID = func() string {
		n++
		return fmt.Sprintf("synth-%d", n)
	}
	return e
}

func TestAutoFix_SynthesizesMissingPet(t *testing.T) {
	e := newTestEngine()
	owners := []model.Owner{
		{ID: "v1", Name: "Dr. Gómez", Role: model.UserRoleVet},
		{ID: "o1", Name: "Ana", Role: model.UserRoleClient},
	}
	apts := []model.Appointment{{ID: "a1", PetName: "Fantasma", Species: "gato"}}

	result := e.AutoFix(apts, nil, owners)

	require.Len(t, result.NewPets, 1)
	created := result.NewPets[0]
	assert.Equal(t, "synth-1", created.ID)
	assert.Equal(t, "Fantasma", created.Name)
	assert.Equal(t, "gato", created.Species)
	assert.Equal(t, "unknown", created.Breed)
	assert.Equal(t, model.SexUnknown, created.Sex)
	assert.Equal(t, SynthesizedBirthDate, created.BirthDate)
	assert.Equal(t, "o1", created.OwnerID)
	assert.Empty(t, result.Errors)

	require.Len(t, result.AppliedFixes, 1)
	assert.Equal(t, "synthesize_pet", result.AppliedFixes[0].Action)
}

func TestAutoFix_DefaultsSpecies(t *testing.T) {
	e := newTestEngine()
	owners := []model.Owner{{ID: "o1", Name: "Ana", Role: model.UserRoleClient}}
	apts := []model.Appointment{{ID: "a1", PetName: "Fantasma"}}

	result := e.AutoFix(apts, nil, owners)

	require.Len(t, result.NewPets, 1)
	assert.Equal(t, "unspecified", result.NewPets[0].Species)
}

func TestAutoFix_NoClientNoInventedPet(t *testing.T) {
	e := newTestEngine()
	owners := []model.Owner{{ID: "v1", Name: "Dr. Gómez", Role: model.UserRoleVet}}
	apts := []model.Appointment{{ID: "a1", PetName: "Fantasma"}}

	result := e.AutoFix(apts, nil, owners)

	assert.Empty(t, result.NewPets)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Fantasma")
	// The appointment still passes through.
	require.Len(t, result.FixedAppointments, 1)
	assert.Equal(t, apts[0], result.FixedAppointments[0])
}

func TestAutoFix_ReassignsDanglingOwner(t *testing.T) {
	e := newTestEngine()
	pets := []model.Pet{{ID: "p1", Name: "Rocky", Species: "perro", OwnerID: "missing"}}
	owners := []model.Owner{{ID: "o1", Name: "Ana", Role: model.UserRoleClient}}
	apts := []model.Appointment{{ID: "a1", PetName: "Rocky"}}

	result := e.AutoFix(apts, pets, owners)

	require.Len(t, result.FixedPets, 1)
	assert.Equal(t, "o1", result.FixedPets[0].OwnerID)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.NewPets)
	// Input pet untouched.
	assert.Equal(t, "missing", pets[0].OwnerID)
}

func TestAutoFix_ExistingNonClientOwnerIsLeftAlone(t *testing.T) {
	// The edge is not dangling: it points at an existing (vet) owner. The
	// engine repairs broken references, it does not re-police roles.
	e := newTestEngine()
	pets := []model.Pet{{ID: "p1", Name: "Rocky", Species: "perro", OwnerID: "v1"}}
	owners := []model.Owner{
		{ID: "v1", Name: "Dr. Gómez", Role: model.UserRoleVet},
		{ID: "o1", Name: "Ana", Role: model.UserRoleClient},
	}
	apts := []model.Appointment{{ID: "a1", PetName: "Rocky"}}

	result := e.AutoFix(apts, pets, owners)

	assert.Empty(t, result.FixedPets)
	assert.Empty(t, result.Errors)
}

func TestAutoFix_ReassignNoClientRecordsError(t *testing.T) {
	e := newTestEngine()
	pets := []model.Pet{{ID: "p1", Name: "Rocky", Species: "perro", OwnerID: "missing"}}
	owners := []model.Owner{{ID: "v1", Name: "Dr. Gómez", Role: model.UserRoleVet}}
	apts := []model.Appointment{{ID: "a1", PetName: "Rocky"}}

	result := e.AutoFix(apts, pets, owners)

	assert.Empty(t, result.FixedPets)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Rocky")
}

func TestAutoFix_SynthesizedPetVisibleToLaterAppointments(t *testing.T) {
	e := newTestEngine()
	owners := []model.Owner{{ID: "o1", Name: "Ana", Role: model.UserRoleClient}}
	apts := []model.Appointment{
		{ID: "a1", PetName: "Fantasma", Species: "gato"},
		{ID: "a2", PetName: "Fantasma", Species: "gato"},
	}

	result := e.AutoFix(apts, nil, owners)

	// Only one pet is created; the second appointment resolves to it.
	assert.Len(t, result.NewPets, 1)
	assert.Len(t, result.AppliedFixes, 1)
}

func TestAutoFix_ConservesAppointments(t *testing.T) {
	e := newTestEngine()
	owners := []model.Owner{{ID: "o1", Name: "Ana", Role: model.UserRoleClient}}
	var apts []model.Appointment
	for i := 0; i < 7; i++ {
		apts = append(apts, model.Appointment{ID: fmt.Sprintf("a%d", i), PetName: fmt.Sprintf("Pet-%d", i)})
	}

	result := e.AutoFix(apts, nil, owners)

	require.Len(t, result.FixedAppointments, len(apts))
	for i, apt := range apts {
		assert.Equal(t, apt, result.FixedAppointments[i])
	}
}

func TestAutoFix_ContinuesAfterErrors(t *testing.T) {
	e := newTestEngine()
	// No clients at all: every missing pet becomes an error, nothing aborts.
	apts := []model.Appointment{
		{ID: "a1", PetName: "Uno"},
		{ID: "a2", PetName: "Dos"},
	}

	result := e.AutoFix(apts, nil, nil)

	assert.Len(t, result.Errors, 2)
	assert.Len(t, result.FixedAppointments, 2)
}
