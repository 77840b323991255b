package httpx

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/oddeye/oddeye/pkg/capture"
	"github.com/oddeye/oddeye/pkg/config"
	"github.com/oddeye/oddeye/pkg/metrics"
	"github.com/oddeye/oddeye/pkg/seal"
	"github.com/oddeye/oddeye/pkg/server/api"
)

func newTestDeps(t *testing.T) *api.Deps {
	t.Helper()
	sealer, err := seal.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	collectors := metrics.New()
	reg := prometheus.NewRegistry()
	require.NoError(t, collectors.Register(reg))

	clock := func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }
	return &api.Deps{
		Capture:        capture.New(sealer, capture.WithClock(clock), capture.WithMetrics(collectors)),
		Ready:          &atomic.Bool{},
		Metrics:        collectors,
		MetricsHandler: metrics.Handler(reg),
	}
}

func serve(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	cfg := config.DefaultServerConfig()
	deps := &api.Deps{
		Ready: &atomic.Bool{},
	}
	router := NewRouter(cfg, deps)

	require.NotNil(t, router)
}

func TestNewRouter_HealthzMounted(t *testing.T) {
	cfg := config.DefaultServerConfig()
	deps := &api.Deps{
		Ready: &atomic.Bool{},
	}
	router := NewRouter(cfg, deps)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestHealthzHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	HealthzHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestHealthzHandler_AlwaysReturnsOK(t *testing.T) {
	// Test multiple calls to ensure idempotency
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()

		HealthzHandler(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "OK", w.Body.String())
	}
}

func TestHealthzHandler_IgnoresRequestBody(t *testing.T) {
	// Health check should work regardless of request body
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	HealthzHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_FingerprintRoutes(t *testing.T) {
	router := NewRouter(config.DefaultServerConfig(), newTestDeps(t))

	w := serve(t, router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	require.Greater(t, w.Body.Len(), seal.NonceSize+seal.Overhead)

	w = serve(t, router, http.MethodGet, "/b64")
	require.Equal(t, http.StatusOK, w.Code)
	_, err := base64.StdEncoding.DecodeString(w.Body.String())
	require.NoError(t, err)
}

func TestNewRouter_UnknownPathAndMethod(t *testing.T) {
	router := NewRouter(config.DefaultServerConfig(), newTestDeps(t))

	require.Equal(t, http.StatusNotFound, serve(t, router, http.MethodGet, "/unknown").Code)
	require.Equal(t, http.StatusMethodNotAllowed, serve(t, router, http.MethodPost, "/b64").Code)
}

func TestNewRouter_DebugRouteGated(t *testing.T) {
	cfg := config.DefaultServerConfig()
	deps := newTestDeps(t)

	require.Equal(t, http.StatusNotFound, serve(t, NewRouter(cfg, deps), http.MethodGet, "/test").Code)

	cfg.DebugRoutes = true
	w := serve(t, NewRouter(cfg, deps), http.MethodGet, "/test")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.Contains(t, w.Body.String(), `"timestamp":"2026-10-19T00:00:00Z"`)
}

func TestNewRouter_MetricsGated(t *testing.T) {
	cfg := config.DefaultServerConfig()
	deps := newTestDeps(t)
	router := NewRouter(cfg, deps)

	serve(t, router, http.MethodGet, "/b64")

	w := serve(t, router, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `oddeye_fingerprints_sealed_total{encoding="base64"} 1`)

	cfg.MetricsEnabled = false
	require.Equal(t, http.StatusNotFound, serve(t, NewRouter(cfg, deps), http.MethodGet, "/metrics").Code)
}

func TestNewRouter_Readyz(t *testing.T) {
	deps := newTestDeps(t)
	router := NewRouter(config.DefaultServerConfig(), deps)

	require.Equal(t, http.StatusServiceUnavailable, serve(t, router, http.MethodGet, "/readyz").Code)
	deps.Ready.Store(true)
	require.Equal(t, http.StatusOK, serve(t, router, http.MethodGet, "/readyz").Code)
}
