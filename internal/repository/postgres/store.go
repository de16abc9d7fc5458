package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

// Store loads record-set snapshots from postgres and commits repair runs.
// Snapshots are ordered by creation so the engine's first-in-input-order
// tie-breaks stay deterministic across calls.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Appointments(ctx context.Context) ([]model.Appointment, error) {
	query := `
		SELECT id, pet_name, pet_id, owner_id, species, scheduled_at, status,
			   vet_name, vet_id, reason, consultation_type, location, price,
			   notes, admin_notes, receipt_ref
		FROM appointments
		ORDER BY created_at, id
	`
	var apts []model.Appointment
	if err := s.db.SelectContext(ctx, &apts, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return apts, nil
}

func (s *Store) Pets(ctx context.Context) ([]model.Pet, error) {
	query := `
		SELECT id, name, species, breed, sex, birth_date, owner_id,
			   next_appointment, last_vaccine_date, photo
		FROM pets
		ORDER BY created_at, id
	`
	var pets []model.Pet
	if err := s.db.SelectContext(ctx, &pets, query); err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	return pets, nil
}

func (s *Store) Owners(ctx context.Context) ([]model.Owner, error) {
	query := `
		SELECT id, name, phone, email, address, role
		FROM users
		ORDER BY created_at, id
	`
	var owners []model.Owner
	if err := s.db.SelectContext(ctx, &owners, query); err != nil {
		return nil, fmt.Errorf("failed to list owners: %w", err)
	}
	return owners, nil
}

func (s *Store) MedicalRecords(ctx context.Context) ([]model.MedicalRecord, error) {
	query := `
		SELECT id, pet_id, date, diagnosis, treatment, vet_name, notes
		FROM medical_records
		ORDER BY date, id
	`
	var records []model.MedicalRecord
	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

// CommitRepairs applies a repair run in one transaction: ownership fixes as
// updates, synthesized pets as inserts.
func (s *Store) CommitRepairs(ctx context.Context, result model.RepairResult) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE pets
		SET owner_id = $1, updated_at = now()
		WHERE id = $2
	`
	for _, pet := range result.FixedPets {
		if _, err := tx.ExecContext(ctx, updateQuery, pet.OwnerID, pet.ID); err != nil {
			return fmt.Errorf("failed to update pet %s: %w", pet.ID, err)
		}
	}

	insertQuery := `
		INSERT INTO pets (
			id, name, species, breed, sex, birth_date, owner_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
	`
	for _, pet := range result.NewPets {
		_, err := tx.ExecContext(ctx, insertQuery,
			pet.ID,
			pet.Name,
			pet.Species,
			pet.Breed,
			pet.Sex,
			pet.BirthDate,
			pet.OwnerID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert pet %s: %w", pet.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit repairs: %w", err)
	}
	return nil
}
