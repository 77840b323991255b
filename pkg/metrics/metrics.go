// Package metrics defines the prometheus collectors exported by oddeye.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Encoding labels for sealed responses.
const (
	EncodingRaw    = "raw"
	EncodingBase64 = "base64"
)

// Failure reasons.
const (
	ReasonSerialize = "serialize"
	ReasonSeal      = "seal"
)

// Collectors groups the service metrics. A nil *Collectors is valid and
// records nothing.
type Collectors struct {
	Sealed      *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	SealedBytes prometheus.Histogram
}

// New creates unregistered collectors.
func New() *Collectors {
	return &Collectors{
		Sealed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddeye_fingerprints_sealed_total",
				Help: "Total count of fingerprints sealed and returned, by response encoding",
			},
			[]string{"encoding"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oddeye_seal_failures_total",
				Help: "Total count of requests that failed to produce a sealed fingerprint",
			},
			[]string{"reason"},
		),
		SealedBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "oddeye_sealed_bytes",
				Help:    "Size of sealed fingerprint records before transport encoding",
				Buckets: prometheus.ExponentialBuckets(64, 2, 8),
			},
		),
	}
}

// Register adds every collector to reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{c.Sealed, c.Failures, c.SealedBytes} {
		if err := reg.Register(collector); err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
	}
	return nil
}

// ObserveSealed records one successful response.
func (c *Collectors) ObserveSealed(encoding string) {
	if c == nil {
		return
	}
	c.Sealed.WithLabelValues(encoding).Inc()
}

// ObserveSize records the size of a sealed record.
func (c *Collectors) ObserveSize(size int) {
	if c == nil {
		return
	}
	c.SealedBytes.Observe(float64(size))
}

// ObserveFailure records one failed request.
func (c *Collectors) ObserveFailure(reason string) {
	if c == nil {
		return
	}
	c.Failures.WithLabelValues(reason).Inc()
}

// Handler serves the exposition format for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
