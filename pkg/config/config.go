// pkg/config/config.go
package config

import (
	"fmt"
	"sync"

	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
)

// Manager handles loading and accessing application configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager creates a new Manager with an empty koanf instance.
func NewManager() *Manager {
	return &Manager{
		koanfInstance: koanf.New("."),
	}
}

// DefaultConfig returns a new Config struct populated with hardcoded default values.
// There is no default encryption key.
func DefaultConfig() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: DefaultServerConfig(),
	}
}

// Load loads configuration from the default sources: defaults, the optional
// YAML file at configFilePath, ODD_EYE_* environment variables and flags.
// A "debug" flag set to true forces log.level=debug.
func (m *Manager) Load(flags *pflag.FlagSet, configFilePath string) error {
	debug := false
	if flags != nil {
		if debugFlag := flags.Lookup("debug"); debugFlag != nil && debugFlag.Value.String() == "true" {
			debug = true
		}
	}
	return m.LoadSources(DefaultSources(configFilePath, flags, debug)...)
}

// LoadSources loads the given sources in priority order and replaces the
// current configuration with the merged result.
func (m *Manager) LoadSources(sources ...ConfigSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := koanf.New(".")
	for _, src := range sortSources(sources) {
		if err := src.Load(k); err != nil {
			return fmt.Errorf("config source %s: %w", src.Name(), err)
		}
		log.Debug().
			Str("component", "config").
			Str("source", src.Name()).
			Msg("Configuration source loaded")
	}

	var newCfg Config
	if err := k.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}

	m.koanfInstance = k
	m.currentConfig = newCfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentConfig
}

// RedactedValue replaces secrets in Effective output.
const RedactedValue = "<redacted>"

// Effective returns the merged configuration tree as loaded, with
// encryption.key replaced by RedactedValue when set.
func (m *Manager) Effective() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	k := m.koanfInstance.Copy()
	if k.String("encryption.key") != "" {
		_ = k.Set("encryption.key", RedactedValue)
	}
	return k.Raw()
}

// DefaultConfigAsMap converts the DefaultConfig struct to a map[string]interface{}
// for koanf's confmap.Provider.
func DefaultConfigAsMap() map[string]interface{} {
	def := DefaultConfig()
	return map[string]interface{}{
		// Log configuration
		"log.level":  def.Log.Level,
		"log.format": def.Log.Format,

		// Server configuration
		"server.addr":            def.Server.Addr,
		"server.port":            def.Server.Port,
		"server.debug_routes":    def.Server.DebugRoutes,
		"server.metrics_enabled": def.Server.MetricsEnabled,
		"server.cors_origin":     def.Server.CORSOrigin,
		"server.read_timeout":    def.Server.ReadTimeout.String(),
		"server.write_timeout":   def.Server.WriteTimeout.String(),

		// Encryption configuration
		"encryption.key": "",
	}
}

// BindFlags defines global command-line flags. The --config flag is defined
// on the root command itself.
func BindFlags(flags *pflag.FlagSet) {
	var flagvar bool
	flags.BoolVar(&flagvar, "debug", false, "Enable debug logging")
}
