package memory

import (
	"context"
	"sync"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

// Store is a mutex-guarded in-memory snapshot store. Reads return copies in
// stable insertion order; CommitRepairs holds the write lock for the whole
// commit so concurrent readers never see a half-applied repair.
type Store struct {
	mu             sync.RWMutex
	appointments   []model.Appointment
	pets           []model.Pet
	owners         []model.Owner
	medicalRecords []model.MedicalRecord
}

func NewStore() *Store {
	return &Store{}
}

// Seed replaces the whole dataset, used at startup in dev mode and by tests.
func (s *Store) Seed(apts []model.Appointment, pets []model.Pet, owners []model.Owner, records []model.MedicalRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appointments = append([]model.Appointment(nil), apts...)
	s.pets = append([]model.Pet(nil), pets...)
	s.owners = append([]model.Owner(nil), owners...)
	s.medicalRecords = append([]model.MedicalRecord(nil), records...)
}

func (s *Store) Appointments(ctx context.Context) ([]model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Appointment(nil), s.appointments...), nil
}

func (s *Store) Pets(ctx context.Context) ([]model.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Pet(nil), s.pets...), nil
}

func (s *Store) Owners(ctx context.Context) ([]model.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Owner(nil), s.owners...), nil
}

func (s *Store) MedicalRecords(ctx context.Context) ([]model.MedicalRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.MedicalRecord(nil), s.medicalRecords...), nil
}

func (s *Store) CommitRepairs(ctx context.Context, result model.RepairResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fixed := range result.FixedPets {
		for i := range s.pets {
			if s.pets[i].ID == fixed.ID {
				s.pets[i] = fixed
				break
			}
		}
	}
	s.pets = append(s.pets, result.NewPets...)
	return nil
}
