package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains the Prometheus collectors for a NeuroPath process.
type Metrics struct {
	ProviderRequests *prometheus.CounterVec
	ProviderDuration *prometheus.HistogramVec

	Adaptations     *prometheus.CounterVec
	StaleResponses  prometheus.Counter
	SpeechCacheHits prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg uses a fresh registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "neuropath_provider_requests_total",
			Help: "Total number of generative provider requests",
		}, []string{"op", "outcome"}),
		ProviderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "neuropath_provider_request_duration_seconds",
			Help:    "Latency of generative provider requests",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2 minutes
		}, []string{"op"}),
		Adaptations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "neuropath_adaptations_total",
			Help: "Total number of adaptation requests by profile",
		}, []string{"profile", "outcome"}),
		StaleResponses: factory.NewCounter(prometheus.CounterOpts{
			Name: "neuropath_stale_responses_total",
			Help: "Adaptation responses discarded because a newer request was issued",
		}),
		SpeechCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "neuropath_speech_cache_hits_total",
			Help: "Read-aloud requests served from decoded audio cache",
		}),
		gatherer: reg,
	}
}

func (m *Metrics) ObserveProviderCall(op, outcome string, elapsed time.Duration) {
	m.ProviderRequests.WithLabelValues(op, outcome).Inc()
	m.ProviderDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAdaptation(profile, outcome string) {
	m.Adaptations.WithLabelValues(profile, outcome).Inc()
}

func (m *Metrics) StaleResponse() { m.StaleResponses.Inc() }

func (m *Metrics) SpeechCacheHit() { m.SpeechCacheHits.Inc() }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
