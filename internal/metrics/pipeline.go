package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Question-answering pipeline metrics.
var (
	KnowledgeDocuments = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "sportsqa",
			Name:      "knowledge_documents",
			Help:      "Documents loaded into the knowledge base per domain",
		},
		[]string{"domain"},
	)

	KnowledgeLoadErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sportsqa",
			Name:      "knowledge_load_errors_total",
			Help:      "Knowledge files skipped at startup",
		},
		[]string{"domain", "reason"},
	)

	RetrievalHits = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sportsqa",
			Name:      "retrieval_hits",
			Help:      "Hits returned per domain retrieval",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"domain"},
	)

	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sportsqa",
			Name:      "answers_total",
			Help:      "Answers returned by source",
		},
		[]string{"source"},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sportsqa",
			Name:      "generation_requests_total",
			Help:      "Total number of generation requests",
		},
		[]string{"provider", "model", "status"},
	)

	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sportsqa",
			Name:      "generation_request_duration_seconds",
			Help:      "Generation request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"provider", "model"},
	)

	GenerationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sportsqa",
			Name:      "generation_errors_total",
			Help:      "Total generation errors",
		},
		[]string{"provider", "error_type"},
	)

	GenerationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sportsqa",
			Name:      "generation_cache_total",
			Help:      "Generation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var registerPipelineOnce sync.Once

// RegisterPipelineMetrics registers the pipeline metrics with the default registry.
// Safe to call more than once.
func RegisterPipelineMetrics() {
	registerPipelineOnce.Do(func() {
		prometheus.MustRegister(
			KnowledgeDocuments,
			KnowledgeLoadErrorsTotal,
			RetrievalHits,
			AnswersTotal,
			GenerationRequestsTotal,
			GenerationRequestDuration,
			GenerationErrorsTotal,
			GenerationCacheTotal,
		)
	})
}
