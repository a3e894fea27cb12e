package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PathsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pathtmpl_paths_total",
			Help: "Total number of URLs turned into path templates",
		},
	)

	TokensTaggedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathtmpl_tokens_tagged_total",
			Help: "Total number of path tokens replaced by a placeholder, by placeholder kind",
		},
		[]string{"kind"},
	)

	RecognizerFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pathtmpl_recognizer_failures_total",
			Help: "Total number of entity recognizer calls that failed and fell back to no entities",
		},
	)

	TemplateDurationSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathtmpl_template_duration_seconds",
			Help:    "Time spent templating one URL, including the entity recognizer call",
			Buckets: prometheus.DefBuckets,
		},
	)
)
