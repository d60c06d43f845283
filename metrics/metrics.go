// Package metrics holds the Prometheus collectors for the workflow service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ApprovalsTotal       *prometheus.CounterVec
	ReadinessChecksTotal *prometheus.CounterVec
	StatusTransitions    *prometheus.CounterVec
	TranslationsTotal    *prometheus.CounterVec
	AuditFailuresTotal   prometheus.Counter
}

// New registers every collector on reg. Tests pass a fresh registry so that
// repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawfirm_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lawfirm_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ApprovalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawfirm_approvals_total",
				Help: "Approval ledger entries recorded",
			},
			[]string{"decision", "target"},
		),
		ReadinessChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawfirm_readiness_checks_total",
				Help: "Export readiness evaluations by outcome",
			},
			[]string{"result"},
		),
		StatusTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawfirm_version_status_transitions_total",
				Help: "Version status changes by new status",
			},
			[]string{"status"},
		),
		TranslationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lawfirm_translation_segments_total",
				Help: "Translated segments submitted",
			},
			[]string{"language"},
		),
		AuditFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "lawfirm_audit_write_failures_total",
				Help: "Audit log entries that could not be written",
			},
		),
	}
}

// NewNop returns collectors bound to a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) RecordApproval(decision, target string) {
	m.ApprovalsTotal.WithLabelValues(decision, target).Inc()
}

func (m *Metrics) RecordReadiness(ready bool, err error) {
	result := "not_ready"
	switch {
	case err != nil:
		result = "error"
	case ready:
		result = "ready"
	}
	m.ReadinessChecksTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordStatusTransition(status string) {
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordTranslations(language string, count int) {
	m.TranslationsTotal.WithLabelValues(language).Add(float64(count))
}
