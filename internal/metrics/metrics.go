// Package metrics exposes Prometheus instrumentation for the workflow engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DocumentsCreated counts documents entering the workflow.
	DocumentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docutrail_documents_created_total",
		Help: "Number of documents created.",
	})

	// Transitions counts workflow operations by operation name and outcome.
	Transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docutrail_workflow_transitions_total",
		Help: "Number of workflow operations executed.",
	}, []string{"operation", "outcome"})

	// NotificationsSent counts notifications produced by transitions.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docutrail_notifications_sent_total",
		Help: "Number of notifications dispatched.",
	})
)
