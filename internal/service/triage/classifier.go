package triage

import (
	"strings"
	"time"

	"github.com/jwalitptl/vetclinic-core/internal/model"
)

// UpcomingWindow is the horizon inside which an otherwise unremarkable
// appointment is bumped to medium urgency.
const UpcomingWindow = 24 * time.Hour

// Keyword sets are checked in order: high first, then medium, first match
// wins. Reasons are free text typed by clients in Spanish.
var (
	highKeywords = []string{
		"urgencia",
		"urgente",
		"emergencia",
		"dolor",
		"sangre",
		"sangrado",
		"herida",
		"accidente",
		"atropell",
		"envenena",
		"intoxica",
		"convulsion",
		"convulsión",
		"fractura",
		"no respira",
		"no come",
	}
	mediumKeywords = []string{
		"vomito",
		"vómito",
		"vomita",
		"diarrea",
		"fiebre",
		"cojea",
		"cojera",
		"infeccion",
		"infección",
		"picazon",
		"picazón",
		"decaido",
		"decaído",
	}
)

// Classify maps a free-text reason plus scheduling to a triage level. It is
// pure and total: any input yields one of the three urgencies.
func Classify(reason string, scheduledAt, now time.Time) model.Urgency {
	lowered := strings.ToLower(reason)

	for _, kw := range highKeywords {
		if strings.Contains(lowered, kw) {
			return model.UrgencyHigh
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(lowered, kw) {
			return model.UrgencyMedium
		}
	}

	until := scheduledAt.Sub(now)
	if until > 0 && until < UpcomingWindow {
		return model.UrgencyMedium
	}
	return model.UrgencyLow
}
