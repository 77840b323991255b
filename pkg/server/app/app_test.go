package app

import (
	"context"
	"encoding/base64"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/oddeye/oddeye/pkg/config"
	"github.com/oddeye/oddeye/pkg/seal"
)

func testConfig() config.ServerConfig {
	cfg := config.DefaultServerConfig()
	cfg.Port = 0 // any free port
	return cfg
}

func testDeps(t *testing.T) *Deps {
	t.Helper()
	sealer, err := seal.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	return &Deps{
		Sealer: sealer,
		Logger: zerolog.Nop(),
	}
}

func startApp(t *testing.T, app *App) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	appErr := make(chan error, 1)
	go func() {
		appErr <- app.Run(ctx)
	}()

	require.Eventually(t, app.Ready.Load, 2*time.Second, 10*time.Millisecond)
	return cancel, appErr
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestNew(t *testing.T) {
	cfg := config.DefaultServerConfig()
	cfg.Port = 9999

	app, err := New(cfg, testDeps(t))
	require.NoError(t, err)
	require.NotNil(t, app)
	require.NotNil(t, app.HTTP)
	require.NotNil(t, app.Metrics)
	require.Equal(t, "127.0.0.1:9999", app.HTTP.Addr)
	require.Equal(t, "127.0.0.1:9999", app.Addr())
	require.False(t, app.Ready.Load())
}

func TestNew_RequiresSealer(t *testing.T) {
	_, err := New(testConfig(), &Deps{Logger: zerolog.Nop()})
	require.Error(t, err)
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	deps := testDeps(t)
	deps.Registry = reg

	_, err := New(testConfig(), deps)
	require.NoError(t, err)

	_, err = New(testConfig(), deps)
	require.Error(t, err, "collectors can only be registered once per registry")
}

func TestApp_Lifecycle(t *testing.T) {
	app, err := New(testConfig(), testDeps(t))
	require.NoError(t, err)

	cancel, appErr := startApp(t, app)
	defer cancel()

	base := "http://" + app.Addr()

	status, body := get(t, base+"/healthz")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "OK", body)

	status, _ = get(t, base+"/readyz")
	require.Equal(t, http.StatusOK, status)

	status, body = get(t, base+"/b64")
	require.Equal(t, http.StatusOK, status)
	record, err := base64.StdEncoding.DecodeString(body)
	require.NoError(t, err)
	require.Greater(t, len(record), seal.NonceSize+seal.Overhead)

	status, body = get(t, base+"/metrics")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "oddeye_fingerprints_sealed_total")

	status, _ = get(t, base+"/test")
	require.Equal(t, http.StatusNotFound, status, "debug routes are off by default")

	// Trigger shutdown
	cancel()

	// Wait for graceful shutdown
	select {
	case err := <-appErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown timeout")
	}

	require.False(t, app.Ready.Load())
}

func TestApp_LifecycleWithDebugRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.DebugRoutes = true
	cfg.MetricsEnabled = false

	deps := testDeps(t)
	deps.Clock = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }

	app, err := New(cfg, deps)
	require.NoError(t, err)

	cancel, appErr := startApp(t, app)
	defer cancel()

	base := "http://" + app.Addr()

	status, body := get(t, base+"/test")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, `"timestamp":"2026-10-19T09:30:00Z"`)
	require.Contains(t, body, `"user_agent":"Go-http-client/1.1"`)

	status, _ = get(t, base+"/metrics")
	require.Equal(t, http.StatusNotFound, status)

	cancel()
	select {
	case err := <-appErr:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Shutdown timeout")
	}
}

func TestApp_ListenFailure(t *testing.T) {
	first, err := New(testConfig(), testDeps(t))
	require.NoError(t, err)

	cancel, appErr := startApp(t, first)
	defer func() {
		cancel()
		<-appErr
	}()

	cfg := testConfig()
	cfg.Port = first.listener.Addr().(*net.TCPAddr).Port

	second, err := New(cfg, testDeps(t))
	require.NoError(t, err)

	err = second.Run(context.Background())
	require.Error(t, err)
	require.False(t, second.Ready.Load())
}
