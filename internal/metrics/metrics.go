package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AskTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebot_ask_total",
			Help: "Total number of answered questions by outcome",
		},
		[]string{"outcome"},
	)

	AskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "servicebot_ask_duration_seconds",
			Help:    "Duration of question resolution in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 20, 40},
		},
		[]string{"outcome"},
	)

	ContextLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebot_context_lookups_total",
			Help: "Web context lookups by origin and status",
		},
		[]string{"origin", "status"},
	)

	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebot_llm_calls_total",
			Help: "Language model calls by purpose and result",
		},
		[]string{"purpose", "result"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "servicebot_store_errors_total",
			Help: "Absorbed persistence failures by operation",
		},
		[]string{"operation"},
	)
)

// Ask 结果标签
const (
	OutcomeBlocked   = "blocked"
	OutcomeMemory    = "memory"
	OutcomeGenerated = "generated"
	OutcomeError     = "error"
)
