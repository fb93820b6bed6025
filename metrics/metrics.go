package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	StoreRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hackforge_store_requests_total", Help: "External store requests by table, operation and outcome"},
		[]string{"table", "op", "outcome"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hackforge_store_request_seconds",
			Help:    "External store request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"table", "op"},
	)
	ScoresSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "hackforge_scores_submitted_total", Help: "Total scores accepted by the judging service"},
	)
	LifecycleTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hackforge_lifecycle_transitions_total", Help: "Hackathon status transitions by target status"},
		[]string{"to"},
	)
	IndexedDocuments = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "hackforge_indexed_documents_total", Help: "Documents mirrored into the semantic index by outcome"},
		[]string{"outcome"},
	)
)

func Register() {
	prometheus.MustRegister(
		StoreRequests,
		StoreLatency,
		ScoresSubmitted,
		LifecycleTransitions,
		IndexedDocuments,
	)
}
