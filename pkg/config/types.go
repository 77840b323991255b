// pkg/config/types.go
package config

import "time"

// Config is the root configuration structure for oddeye.
type Config struct {
	Log        LogConfig        `description:"Logging configuration" koanf:"log"`
	Server     ServerConfig     `description:"Server configuration" koanf:"server"`
	Encryption EncryptionConfig `description:"Encryption configuration" koanf:"encryption"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `description:"Log level: trace|debug|info|warn|error" koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format string `description:"Log format: text | json" koanf:"format" validate:"oneof=text json"`
}

// ServerConfig holds configuration for the HTTP listener and its routes.
type ServerConfig struct {
	// Network settings
	Addr string `description:"Server listen address" koanf:"addr" validate:"required"`
	Port int    `description:"Server listen port" koanf:"port" validate:"min=1,max=65535"`

	// Route toggles
	DebugRoutes    bool `description:"Expose the unsealed fingerprint on /test (never in production)" koanf:"debug_routes"`
	MetricsEnabled bool `description:"Expose prometheus metrics on /metrics" koanf:"metrics_enabled"`

	CORSOrigin string `description:"Value of Access-Control-Allow-Origin" koanf:"cors_origin"`

	// HTTP timeouts
	ReadTimeout  time.Duration `description:"HTTP read timeout" koanf:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `description:"HTTP write timeout" koanf:"write_timeout" validate:"min=0"`
}

// EncryptionConfig holds the sealing key. Key is raw key material, taken
// byte for byte.
type EncryptionConfig struct {
	Key string `description:"Raw 32-byte encryption key" koanf:"key"`
}

// String keeps the key out of logs and error messages.
func (e EncryptionConfig) String() string {
	if e.Key == "" {
		return "EncryptionConfig{Key: <unset>}"
	}
	return "EncryptionConfig{Key: <redacted>}"
}
