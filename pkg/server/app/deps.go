package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/oddeye/oddeye/pkg/capture"
)

// Deps holds dependencies for the server application.
// This pattern enables dependency injection and easier testing.
type Deps struct {
	// Sealer encrypts every served fingerprint. Shared by all requests.
	Sealer capture.Sealer

	// Registry receives the service collectors. Nil creates a private one.
	Registry *prometheus.Registry

	// Clock stamps captured fingerprints. Nil means time.Now.
	Clock func() time.Time

	// Logger for structured logging (injected by caller)
	Logger zerolog.Logger
}
