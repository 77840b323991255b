package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oddeye/oddeye/cmd/oddeye/internal/format"
	"github.com/oddeye/oddeye/pkg/appctx"
	"github.com/oddeye/oddeye/pkg/logging"
	"github.com/oddeye/oddeye/pkg/seal"
	serversvc "github.com/oddeye/oddeye/pkg/server"
	"github.com/oddeye/oddeye/pkg/server/app"
)

// newServeCommand creates the 'oddeye serve' command.
//
// Configuration is loaded from, lowest to highest priority:
//   - built-in defaults
//   - the YAML file given with --config
//   - environment variables (ODD_EYE_*)
//   - flags (--server.port, --server.debug_routes, ...)
//
// Example usage:
//
//	ODD_EYE_ENCRYPTION_KEY=... oddeye serve
//	oddeye serve --server.addr 0.0.0.0 --server.port 8080
func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve sealed fingerprints over HTTP",
		Long: `Start the HTTP listener.

GET /     returns the sealed fingerprint of the request as raw bytes.
GET /b64  returns the same record, base64 encoded.

The server runs until interrupted (Ctrl+C) or terminated, then drains
in-flight requests before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	const operation = "start server"

	cfgMgr, ok := appctx.Config(cmd.Context())
	if !ok {
		return reportFailure(cmd, operation, serversvc.ErrConfigUnavailable)
	}
	cfg := cfgMgr.Get()

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return reportFailure(cmd, operation, serversvc.NewInvalidPortError(cfg.Server.Port))
	}
	if err := cfg.Validate(); err != nil {
		return reportFailure(cmd, operation, serversvc.WrapInvalidConfig(err))
	}

	if err := logging.ConfigureGlobalLogging(cfg.Log.Level, cfg.Log.Format); err != nil {
		return reportFailure(cmd, operation, serversvc.WrapInvalidConfig(err))
	}
	logger := logging.Component("server")

	sealer, err := seal.New([]byte(cfg.Encryption.Key))
	if err != nil {
		return reportFailure(cmd, operation, serversvc.WrapInvalidConfig(err))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverApp, err := app.New(cfg.Server, &app.Deps{
		Sealer: sealer,
		Logger: logger,
	})
	if err != nil {
		return reportFailure(cmd, operation, serversvc.WrapAppInit(err))
	}

	// Run server (blocks until shutdown)
	if err := serverApp.Run(ctx); err != nil {
		return reportFailure(cmd, operation, serversvc.WrapRuntime(err))
	}
	return nil
}

// reportFailure prints the failure summary for err and returns it marked as
// reported.
func reportFailure(cmd *cobra.Command, operation string, err error) error {
	formatter := format.FromCommand(cmd)
	_ = formatter.PrintTotalFailureSummary(operation, err, serversvc.ErrorCode(err), serversvc.Suggestions(err))
	return &reportedError{error: err}
}
