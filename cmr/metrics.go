package cmr

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/s0up4200/cmrquery/query"
)

// codeTransportError labels requests that never received a status code.
const codeTransportError = "error"

// Metrics records CMR request counts and latencies.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "cmr",
				Name:      "requests_total",
				Help:      "Total number of CMR search requests.",
			},
			[]string{"kind", "code"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "cmr",
				Name:      "request_duration_seconds",
				Help:      "Duration of CMR search requests in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"kind"},
		),
	}
}

func (m *Metrics) observe(kind query.Kind, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := codeTransportError
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.requests.WithLabelValues(string(kind), code).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}
