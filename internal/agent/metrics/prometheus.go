package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	classificationsTotal *prometheus.CounterVec
	answersTotal         *prometheus.CounterVec
	llmRequestsTotal     *prometheus.CounterVec
	llmRequestDuration   *prometheus.HistogramVec
	requestsTotal        *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder whose collectors are registered on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		classificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_classifications_total",
				Help: "Total number of question classifications by category and outcome",
			},
			[]string{"category", "outcome"},
		),
		answersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_answers_total",
				Help: "Total number of specialist answers by specialist and outcome",
			},
			[]string{"specialist", "outcome"},
		),
		llmRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total number of LLM requests by operation, model, and status",
			},
			[]string{"operation", "model", "status"},
		),
		llmRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Duration of LLM requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "model"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_requests_total",
				Help: "Total number of assistant requests by category and cache hit",
			},
			[]string{"category", "cached"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_request_duration_seconds",
				Help:    "Duration of assistant requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"category"},
		),
	}
}

func (p *PrometheusRecorder) ObserveClassification(category string, fallback bool) {
	p.classificationsTotal.WithLabelValues(category, outcome(fallback)).Inc()
}

func (p *PrometheusRecorder) ObserveAnswer(specialist string, fallback bool) {
	p.answersTotal.WithLabelValues(specialist, outcome(fallback)).Inc()
}

func (p *PrometheusRecorder) ObserveLLMCall(operation, model string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	p.llmRequestsTotal.WithLabelValues(operation, model, status).Inc()
	p.llmRequestDuration.WithLabelValues(operation, model).Observe(duration.Seconds())
}

func (p *PrometheusRecorder) ObserveRequest(category string, cached bool, duration time.Duration) {
	p.requestsTotal.WithLabelValues(category, strconv.FormatBool(cached)).Inc()
	p.requestDuration.WithLabelValues(category).Observe(duration.Seconds())
}

var _ Recorder = (*PrometheusRecorder)(nil)
