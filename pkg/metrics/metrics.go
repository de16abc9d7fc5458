package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all relation-engine metrics
type Metrics struct {
	RelationsEnriched prometheus.Counter
	IntegrityDefects  *prometheus.CounterVec
	RepairsApplied    *prometheus.CounterVec
	RepairErrors      prometheus.Counter
	EnrichmentLatency prometheus.Histogram
}

// NewMetrics creates and registers all engine metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RelationsEnriched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relations_enriched_total",
			Help:      "Total number of appointment relation records produced",
		}),
		IntegrityDefects: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "integrity_defects_total",
			Help:      "Total number of referential defects detected, by issue",
		}, []string{"issue"}),
		RepairsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repairs_applied_total",
			Help:      "Total number of automatic repairs applied, by action",
		}, []string{"action"}),
		RepairErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repair_errors_total",
			Help:      "Total number of unrepairable defects encountered",
		}),
		EnrichmentLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "enrichment_duration_seconds",
			Help:      "Time spent enriching an appointment snapshot",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
}
