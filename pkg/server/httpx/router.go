package httpx

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/oddeye/oddeye/pkg/config"
	"github.com/oddeye/oddeye/pkg/server/api"
	v1 "github.com/oddeye/oddeye/pkg/server/api/v1"
)

// NewRouter creates and configures the main HTTP router.
//
// The router uses Go 1.22+ enhanced pattern matching. "GET /{$}" matches the
// root path only, so unknown paths fall through to the mux's 404.
//
// /test is mounted only when cfg.DebugRoutes is set and /metrics only when
// cfg.MetricsEnabled is set and deps carries a handler.
func NewRouter(cfg config.ServerConfig, deps *api.Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Fingerprint endpoints
	mux.HandleFunc("GET /{$}", v1.SealedHandler(deps))
	mux.HandleFunc("GET /b64", v1.Base64Handler(deps))

	if cfg.DebugRoutes {
		log.Warn().
			Str("component", "http").
			Msg("Debug routes enabled: GET /test returns unsealed fingerprints")
		mux.HandleFunc("GET /test", v1.DebugFingerprintHandler(deps))
	}

	// Health endpoints (always enabled)
	mux.HandleFunc("GET /healthz", HealthzHandler)
	mux.HandleFunc("GET /readyz", v1.ReadyzHandler(deps.Ready))

	if cfg.MetricsEnabled && deps.MetricsHandler != nil {
		mux.Handle("GET /metrics", deps.MetricsHandler)
	}

	return mux
}

// HealthzHandler responds with 200 OK if the server process is alive.
// This endpoint is used by load balancers and orchestrators for liveness checks.
//
// It does not check the sealer or readiness, just process health.
// For readiness checks, use /readyz instead.
func HealthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
