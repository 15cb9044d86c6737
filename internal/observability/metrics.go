package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_http_requests_total",
		Help: "Total number of HTTP requests by route and status",
	}, []string{"route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_cache_lookups_total",
		Help: "Cache lookups by endpoint and result (hit, miss, error)",
	}, []string{"endpoint", "result"})

	StoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_store_request_duration_seconds",
		Help:    "Latency of document-store requests",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"operation"})

	StoreErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_store_errors_total",
		Help: "Failed document-store requests",
	}, []string{"operation"})

	TextGenLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_textgen_request_duration_seconds",
		Help:    "Latency of text-generation requests",
		Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"purpose"})

	TextGenErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_textgen_errors_total",
		Help: "Failed text-generation requests",
	}, []string{"purpose"})

	PromptCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_prompt_cache_total",
		Help: "Prompt cache lookups and rejected saves by result",
	}, []string{"result"})

	SSEStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "analytics_sse_streams_active",
		Help: "Number of open assistant streams",
	})

	AssistantRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_assistant_runs_total",
		Help: "Assistant runs by final step",
	}, []string{"step"})

	TopicUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_topic_upserts_total",
		Help: "Topic cluster upserts by outcome (created, updated, failed)",
	}, []string{"outcome"})

	TopicAbsorbJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_topic_absorb_jobs_total",
		Help: "Background topic absorption jobs by status",
	}, []string{"status"})
)
