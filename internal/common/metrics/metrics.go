// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Duration of job processing in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ReadinessFallbackLevels = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readiness_fallback_level_total",
			Help: "Readiness assignments that used the fallback catalog entry",
		},
		[]string{"readiness_type"},
	)

	WorkItemsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "work_items_generated_total",
			Help: "Generated work items persisted, by kind",
		},
		[]string{"kind"},
	)

	WorkItemRefinements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "work_item_refinements_total",
			Help: "Completed refinement conversation turns, by item kind",
		},
		[]string{"kind"},
	)

	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "status_transitions_total",
			Help: "Approval state machine applications, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	AssessmentAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_assignments_total",
			Help: "Assessment assignment outcomes (assigned, replaced, skipped)",
		},
		[]string{"outcome"},
	)
)
