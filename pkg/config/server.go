package config

import (
	"time"

	"github.com/spf13/pflag"
)

// DefaultPort is the listen port used when none is configured.
const DefaultPort = 4000

// DefaultServerConfig returns the default server configuration.
// Debug routes are off; they expose unsealed fingerprints.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:           "127.0.0.1",
		Port:           DefaultPort,
		DebugRoutes:    false,
		MetricsEnabled: true,
		CORSOrigin:     "*",
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
	}
}

// BindServerFlags binds server-specific flags to the provided FlagSet.
//
// Flags are namespaced under 'server.' so the posflag provider maps them
// straight onto koanf keys. Example: --server.addr, --server.port
func BindServerFlags(flags *pflag.FlagSet) {
	defaults := DefaultServerConfig()

	flags.String("server.addr", defaults.Addr, "Server listen address (use 0.0.0.0 for all interfaces)")
	flags.Int("server.port", defaults.Port, "Server listen port")
	flags.Bool("server.debug_routes", defaults.DebugRoutes, "Expose the unsealed fingerprint on /test (development only)")
	flags.Bool("server.metrics_enabled", defaults.MetricsEnabled, "Expose prometheus metrics on /metrics")
	flags.String("server.cors_origin", defaults.CORSOrigin, "Access-Control-Allow-Origin value")
	flags.Duration("server.read_timeout", defaults.ReadTimeout, "HTTP read timeout")
	flags.Duration("server.write_timeout", defaults.WriteTimeout, "HTTP write timeout")
}
