package repository

import (
	"context"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

// Store supplies the record-set snapshots the relation engine consumes and
// commits repair output back. Snapshot order must be deterministic: the
// engine's tie-breaks are defined as "first in input order".
type Store interface {
	Appointments(ctx context.Context) ([]model.Appointment, error)
	Pets(ctx context.Context) ([]model.Pet, error)
	Owners(ctx context.Context) ([]model.Owner, error)
	MedicalRecords(ctx context.Context) ([]model.MedicalRecord, error)

	// CommitRepairs persists a repair run: modified pets are upserted and
	// synthesized pets inserted. The commit must be serialized against
	// snapshot reads so no caller observes a partially-applied repair.
	CommitRepairs(ctx context.Context, result model.RepairResult) error
}
