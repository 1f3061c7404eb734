// Package metrics exposes renderer events as Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"atomcss/styles"
)

// Metrics holds renderer counters. It implements styles.Observer.
type Metrics struct {
	RulesInsertedTotal *prometheus.CounterVec
	CacheLookupsTotal  *prometheus.CounterVec
	FailuresTotal      *prometheus.CounterVec
}

// NewMetrics creates counters and registers them with reg. When reg is nil
// counters are registered with the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RulesInsertedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atomcss_rules_inserted_total",
				Help: "Total number of rules inserted into stylesheets",
			},
			[]string{"bucket"},
		),

		CacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atomcss_cache_lookups_total",
				Help: "Total number of insertion cache lookups",
			},
			[]string{"result"},
		),

		FailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atomcss_declaration_failures_total",
				Help: "Total number of declarations which could not be resolved",
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) RulesInserted(bucket styles.Bucket, count int) {
	m.RulesInsertedTotal.WithLabelValues(bucket.String()).Add(float64(count))
}

func (m *Metrics) CacheLookup(result styles.LookupResult) {
	m.CacheLookupsTotal.WithLabelValues(result.String()).Inc()
}

func (m *Metrics) DeclarationFailed(kind string) {
	m.FailuresTotal.WithLabelValues(kind).Inc()
}
