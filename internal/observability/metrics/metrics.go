package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters/histograms for the lead-capture pipeline.
type LeadMetrics struct {
	capturedTotal   *prometheus.CounterVec
	duplicatesTotal *prometheus.CounterVec
	notifyFailures  prometheus.Counter
	completionTime  *prometheus.HistogramVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		capturedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadchat",
			Subsystem: "leads",
			Name:      "captured_total",
			Help:      "Total leads persisted, by extraction source",
		}, []string{"source"}),
		duplicatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadchat",
			Subsystem: "leads",
			Name:      "duplicates_total",
			Help:      "Total lead candidates skipped as duplicates, by extraction source",
		}, []string{"source"}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leadchat",
			Subsystem: "notify",
			Name:      "failures_total",
			Help:      "Total lead notification emails that failed to send",
		}),
		completionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leadchat",
			Subsystem: "chat",
			Name:      "completion_seconds",
			Help:      "Latency of completion API calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"call"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.capturedTotal, m.duplicatesTotal, m.notifyFailures, m.completionTime)
	return m
}

func (m *LeadMetrics) ObserveCaptured(source string) {
	if m == nil {
		return
	}
	m.capturedTotal.WithLabelValues(source).Inc()
}

func (m *LeadMetrics) ObserveDuplicate(source string) {
	if m == nil {
		return
	}
	m.duplicatesTotal.WithLabelValues(source).Inc()
}

func (m *LeadMetrics) ObserveNotifyFailure() {
	if m == nil {
		return
	}
	m.notifyFailures.Inc()
}

func (m *LeadMetrics) ObserveCompletion(call string, seconds float64) {
	if m == nil {
		return
	}
	m.completionTime.WithLabelValues(call).Observe(seconds)
}
