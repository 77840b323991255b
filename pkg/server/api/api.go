package api

import (
	"net/http"
	"sync/atomic"

	"github.com/oddeye/oddeye/pkg/fingerprint"
	"github.com/oddeye/oddeye/pkg/metrics"
)

// Deps holds dependencies for API handlers.
// This pattern enables dependency injection and easier testing.
type Deps struct {
	// Capture builds and seals fingerprints
	Capture FingerprintService

	// Ready flag for readiness check
	Ready *atomic.Bool

	// Metrics records delivered fingerprints. May be nil.
	Metrics *metrics.Collectors

	// MetricsHandler serves /metrics. Nil leaves the route unmounted.
	MetricsHandler http.Handler
}

// FingerprintService is the subset of the capture pipeline needed by the API.
// Defined here to avoid circular dependencies and ease mocking.
type FingerprintService interface {
	Fingerprint(fields []fingerprint.HeaderField) fingerprint.Fingerprint
	Seal(fields []fingerprint.HeaderField) ([]byte, error)
}
