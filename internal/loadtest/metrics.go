package loadtest

import "github.com/prometheus/client_golang/prometheus"

// metrics — Prometheus метрики прогона loadtest.
type metrics struct {
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// newMetrics регистрирует метрики в переданном registry.
// Свой registry на каждый прогон: глобальная регистрация мешала бы
// повторным запускам внутри одного процесса.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "purchasectl_loadtest_requests_total",
			Help: "Total requests issued by the load test, by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "purchasectl_loadtest_request_duration_seconds",
			Help:    "Latency of load test requests.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *metrics) observe(latency float64, success bool) {
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.requests.WithLabelValues(outcome).Inc()
	if latency >= 0 {
		m.duration.Observe(latency)
	}
}
