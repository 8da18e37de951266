package telemetry

import (
	"strconv"
	"strings"
	"time"

	"staffhub/config"
	"staffhub/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric 未啟用時所有 vec 皆為 nil，方法呼叫為 no-op
type Metric struct {
	HttpRequestsTotal       *prometheus.CounterVec
	HttpRequestDuration     *prometheus.HistogramVec
	HttpFailTotal           *prometheus.CounterVec
	EmployeesProvisioned    prometheus.Counter
	ProvisionFailTotal      *prometheus.CounterVec
	ProvisionCollisionTotal prometheus.Counter
	RateLimitedTotal        *prometheus.CounterVec
	ReconciledTotal         *prometheus.CounterVec
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	prefix := metricPrefix(config.App.Name)
	return &Metric{
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + string(core.MetricHttpRequestDuration),
				Help:    "Request handling duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		HttpFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricHttpFailTotal),
				Help: "Requests answered with an error envelope",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		EmployeesProvisioned: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricEmployeesProvisioned),
				Help: "Employee accounts created by batch generation",
			},
		),
		ProvisionFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricProvisionFailTotal),
				Help: "Per-item provisioning failures",
			},
			labelNames(core.MetricLabelReason),
		),
		ProvisionCollisionTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricProvisionCollisionTotal),
				Help: "Suffixes skipped because the identity already existed",
			},
		),
		RateLimitedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricRateLimitTotal),
				Help: "Requests rejected by the rate limiter",
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ReconciledTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + string(core.MetricReconciledTotal),
				Help: "Orphaned identities handled by reconciliation",
			},
			labelNames(core.MetricLabelStatus),
		),
	}
}

func (m *Metric) ObserveRequest(endpoint string, status int, elapsed time.Duration) {
	if m == nil || m.HttpRequestsTotal == nil {
		return
	}
	code := strconv.Itoa(status)
	m.HttpRequestsTotal.WithLabelValues(endpoint, code).Inc()
	m.HttpRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	if status >= 400 {
		m.HttpFailTotal.WithLabelValues(endpoint, code).Inc()
	}
}

func (m *Metric) AddProvisioned(n int) {
	if m == nil || m.EmployeesProvisioned == nil || n <= 0 {
		return
	}
	m.EmployeesProvisioned.Add(float64(n))
}

func (m *Metric) IncProvisionFail(reason string) {
	if m == nil || m.ProvisionFailTotal == nil {
		return
	}
	m.ProvisionFailTotal.WithLabelValues(reason).Inc()
}

func (m *Metric) IncCollision() {
	if m == nil || m.ProvisionCollisionTotal == nil {
		return
	}
	m.ProvisionCollisionTotal.Inc()
}

func (m *Metric) IncRateLimited(endpoint string) {
	if m == nil || m.RateLimitedTotal == nil {
		return
	}
	m.RateLimitedTotal.WithLabelValues(endpoint).Inc()
}

func (m *Metric) AddReconciled(status string, n int) {
	if m == nil || m.ReconciledTotal == nil || n <= 0 {
		return
	}
	m.ReconciledTotal.WithLabelValues(status).Add(float64(n))
}

// metricPrefix prometheus 名稱只允許 [a-zA-Z0-9_:]
func metricPrefix(appName string) string {
	if appName == "" {
		return ""
	}
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(appName) + "_"
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
