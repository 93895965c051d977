// Package metrics exposes Prometheus instrumentation for the prediction
// service: prediction outcomes, provider failures and simulation latency.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Recorder struct {
	registry *prometheus.Registry

	predictions     *prometheus.CounterVec
	providerCalls   *prometheus.CounterVec
	predictDuration prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goalline_predictions_total",
			Help: "Predictions by outcome: ok, degraded, failed.",
		}, []string{"outcome"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goalline_provider_calls_total",
			Help: "External provider calls by provider and status.",
		}, []string{"provider", "status"}),
		predictDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "goalline_predict_duration_seconds",
			Help:    "Wall time of a full prediction run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	r.registry.MustRegister(r.predictions, r.providerCalls, r.predictDuration)
	return r
}

// RecordPrediction counts one finished prediction
func (r *Recorder) RecordPrediction(degraded bool, err error) {
	if r == nil {
		return
	}
	switch {
	case err != nil:
		r.predictions.WithLabelValues("failed").Inc()
	case degraded:
		r.predictions.WithLabelValues("degraded").Inc()
	default:
		r.predictions.WithLabelValues("ok").Inc()
	}
}

// RecordProviderCall counts one external lookup
func (r *Recorder) RecordProviderCall(provider string, err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.providerCalls.WithLabelValues(provider, status).Inc()
}

// RecordPredictDuration observes the wall time of one prediction run
func (r *Recorder) RecordPredictDuration(d time.Duration) {
	if r == nil {
		return
	}
	r.predictDuration.Observe(d.Seconds())
}

// Handler serves the registry in Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
