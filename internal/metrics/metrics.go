// Package metrics exposes Prometheus collectors for the provisioning
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationWaitSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "genomix",
		Name:      "operation_wait_seconds",
		Help:      "Time spent waiting for compute operations to finish.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"operation_type"})

	phaseDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "genomix",
		Name:      "phase_duration_seconds",
		Help:      "Duration of provisioning phases.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"phase", "outcome"})

	conflictRemovalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "genomix",
		Name:      "conflict_removals_total",
		Help:      "Conflicting subnets and peerings removed during network reconciliation.",
	}, []string{"resource"})
)

// ObserveOperationWait records the wall time of one compute operation wait.
func ObserveOperationWait(operationType string, d time.Duration) {
	if operationType == "" {
		operationType = "unknown"
	}
	operationWaitSeconds.WithLabelValues(operationType).Observe(d.Seconds())
}

// ObservePhase records the duration and outcome of one provisioning phase.
func ObservePhase(phase string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	phaseDurationSeconds.WithLabelValues(phase, outcome).Observe(d.Seconds())
}

// CountConflictRemoval counts one removed conflicting resource.
func CountConflictRemoval(resource string) {
	conflictRemovalsTotal.WithLabelValues(resource).Inc()
}
