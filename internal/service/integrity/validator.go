package integrity

import (
	"fmt"

	"github.com/jwalitptl/vetclinic-core/internal/model"
	"github.com/jwalitptl/vetclinic-core/internal/service/enrichment"
)

// Validator partitions appointments into valid, invalid and fixable using a
// single enrichment pass per appointment. The first applicable defect wins;
// defects are not accumulated.
type Validator struct {
	enricher *enrichment.Service
}

func NewValidator(enricher *enrichment.Service) *Validator {
	return &Validator{enricher: enricher}
}

// Validate classifies every appointment into exactly one partition.
func (v *Validator) Validate(apts []model.Appointment, pets []model.Pet, owners []model.Owner, records []model.MedicalRecord) model.IntegrityReport {
	report := model.IntegrityReport{
		Valid:   []model.RelationRecord{},
		Invalid: []model.IntegrityEntry{},
		Fixable: []model.IntegrityEntry{},
	}

	clients := 0
	for i := range owners {
		if owners[i].IsClient() {
			clients++
		}
	}

	for _, apt := range apts {
		rec := v.enricher.Enrich(apt, pets, owners, records)

		switch {
		case rec.Pet == nil:
			species := apt.Species
			if species == "" {
				species = "unspecified"
			}
			report.Fixable = append(report.Fixable, model.IntegrityEntry{
				Appointment:  apt,
				Issue:        model.IssuePetNotFound,
				Detail:       fmt.Sprintf("no pet matches %q", apt.PetName),
				SuggestedFix: fmt.Sprintf("create pet %q (%s)", apt.PetName, species),
			})

		case rec.Owner == nil:
			entry := model.IntegrityEntry{
				Appointment: apt,
				Issue:       model.IssueOwnerNotFound,
				Detail:      fmt.Sprintf("no owner found for pet %q", rec.Pet.Name),
			}
			if clients > 0 {
				entry.SuggestedFix = fmt.Sprintf("assign one of %d client candidate(s)", clients)
				report.Fixable = append(report.Fixable, entry)
			} else {
				report.Invalid = append(report.Invalid, entry)
			}

		case rec.Pet.OwnerID != rec.Owner.ID:
			report.Fixable = append(report.Fixable, model.IntegrityEntry{
				Appointment:  apt,
				Issue:        model.IssueOwnershipMismatch,
				Detail:       fmt.Sprintf("pet %q references owner %q but resolved to %q", rec.Pet.Name, rec.Pet.OwnerID, rec.Owner.ID),
				SuggestedFix: fmt.Sprintf("update pet %s owner to %s", rec.Pet.ID, rec.Owner.ID),
			})

		default:
			report.Valid = append(report.Valid, rec)
		}
	}

	return report
}
