package state

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"atomcss/metrics"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	reg := prometheus.NewRegistry()
	return &LocalEnv{
		start:   time.Now(),
		Prom:    reg,
		Metrics: metrics.NewMetrics(reg),
	}
}
