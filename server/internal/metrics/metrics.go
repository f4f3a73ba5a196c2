package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskboard/riskboard/pkg/report"
)

const namespace = "riskboard"

// Metrics owns a private registry; nothing is registered globally.
type Metrics struct {
	reg *prometheus.Registry

	dropoutRate   *prometheus.GaugeVec
	beneficiaries *prometheus.GaugeVec
	annualCost    *prometheus.GaugeVec
	importance    *prometheus.GaugeVec
	roi           prometheus.Gauge
	savings       prometheus.Gauge
	revision      prometheus.Gauge
	publishedAt   prometheus.Gauge

	requests     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	alertsFiring prometheus.Gauge
	wsClients    prometheus.Gauge
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		dropoutRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "region_dropout_rate_percent",
			Help: "Dropout rate per region, in percent.",
		}, []string{"region", "priority"}),
		beneficiaries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "region_beneficiaries",
			Help: "Beneficiaries per region.",
		}, []string{"region"}),
		annualCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "region_annual_cost",
			Help: "Derived annual dropout cost per region, in whole currency units.",
		}, []string{"region"}),
		importance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "feature_importance",
			Help: "Mean absolute SHAP importance per feature.",
		}, []string{"feature", "rank"}),
		roi: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "business_roi_percent",
			Help: "Three-year ROI, in percent.",
		}),
		savings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "business_potential_savings_millions",
			Help: "Potential annual savings, in millions.",
		}),
		revision: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "report_revision",
			Help: "Revision of the currently published report.",
		}),
		publishedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "report_published_timestamp_seconds",
			Help: "Unix time the current report was published.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency, by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		alertsFiring: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "alerts_firing",
			Help: "Alerts currently firing.",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "ws_clients",
			Help: "Connected WebSocket clients.",
		}),
	}
	m.reg.MustRegister(
		m.dropoutRate, m.beneficiaries, m.annualCost, m.importance,
		m.roi, m.savings, m.revision, m.publishedAt,
		m.requests, m.duration, m.alertsFiring, m.wsClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry returns the underlying registry, for gathering in tests and tools.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// ObserveReport replaces the report gauges with the figures of r.
func (m *Metrics) ObserveReport(r *report.Report, revision int, at time.Time) {
	m.dropoutRate.Reset()
	m.beneficiaries.Reset()
	m.annualCost.Reset()
	m.importance.Reset()

	for _, s := range r.Strategy {
		m.dropoutRate.WithLabelValues(s.Region, string(s.Priority)).Set(s.DropoutRate)
		m.beneficiaries.WithLabelValues(s.Region).Set(float64(s.Beneficiaries))
		m.annualCost.WithLabelValues(s.Region).Set(float64(s.AnnualCost))
	}
	for _, f := range r.Insights.TopFeatures {
		m.importance.WithLabelValues(f.Feature, strconv.Itoa(f.Rank)).Set(f.Importance)
	}
	b := r.Insights.BusinessImpact
	m.roi.Set(b.ROI3Year)
	m.savings.Set(b.PotentialSavings)
	m.revision.Set(float64(revision))
	m.publishedAt.Set(float64(at.Unix()))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(d.Seconds())
}

// SetAlertsFiring records the number of firing alerts.
func (m *Metrics) SetAlertsFiring(n int) {
	m.alertsFiring.Set(float64(n))
}

// SetWSClients records the number of connected WebSocket clients.
func (m *Metrics) SetWSClients(n int) {
	m.wsClients.Set(float64(n))
}
