// pkg/config/source.go
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of every environment variable read by oddeye.
const EnvPrefix = "ODD_EYE_"

// ConfigSource represents a configuration source that can load values into koanf.
// Sources are loaded in priority order (lowest first), with higher priority sources
// overriding lower priority values.
//
// Built-in sources and their priorities:
//   - DefaultSource (10): Hardcoded default values
//   - FileSource (20): Config file (--config)
//   - EnvSource (30): Environment variables (ODD_EYE_*)
//   - FlagSource (40): Command-line flags
type ConfigSource interface {
	// Name returns a human-readable name for this source (for logging/debugging)
	Name() string

	// Priority returns the load priority. Lower values are loaded first,
	// higher values override lower ones.
	Priority() int

	// Load loads configuration values into the provided koanf instance.
	Load(k *koanf.Koanf) error
}

// DefaultSource provides hardcoded default configuration values.
// Priority: 10 (lowest, loaded first)
type DefaultSource struct{}

func (s *DefaultSource) Name() string  { return "defaults" }
func (s *DefaultSource) Priority() int { return 10 }

func (s *DefaultSource) Load(k *koanf.Koanf) error {
	if err := k.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil); err != nil {
		return fmt.Errorf("error loading defaults: %w", err)
	}
	return nil
}

// FileSource loads configuration from a YAML file.
// Priority: 20
type FileSource struct {
	Path string // Path to config file (optional, silently skipped if empty or missing)
}

func (s *FileSource) Name() string  { return "file:" + s.Path }
func (s *FileSource) Priority() int { return 20 }

func (s *FileSource) Load(k *koanf.Koanf) error {
	if s.Path == "" {
		return nil
	}

	if _, err := os.Stat(s.Path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error checking config file %s: %w", s.Path, err)
	}

	if err := k.Load(file.Provider(s.Path), yaml.Parser()); err != nil {
		return fmt.Errorf("error loading config file %s: %w", s.Path, err)
	}
	return nil
}

// EnvSource loads configuration from environment variables.
// The prefix is stripped and the first underscore becomes a dot:
//
//	ODD_EYE_ENCRYPTION_KEY      -> encryption.key
//	ODD_EYE_LOG_LEVEL           -> log.level
//	ODD_EYE_SERVER_DEBUG_ROUTES -> server.debug_routes
//	ODD_EYE_PORT                -> server.port
//
// A port that is not an integer in 1-65535 is dropped so the default applies.
//
// Priority: 30
type EnvSource struct {
	Prefix string // Environment variable prefix (default: "ODD_EYE_")
}

func (s *EnvSource) Name() string  { return "env" }
func (s *EnvSource) Priority() int { return 30 }

func (s *EnvSource) Load(k *koanf.Koanf) error {
	prefix := s.Prefix
	if prefix == "" {
		prefix = EnvPrefix
	}

	provider := env.ProviderWithValue(prefix, ".", func(rawKey, value string) (string, interface{}) {
		key := envKey(prefix, rawKey)
		if key != "server.port" {
			return key, value
		}

		port, err := cast.ToIntE(strings.TrimSpace(value))
		if err != nil || port < 1 || port > 65535 {
			log.Warn().
				Str("component", "config").
				Str("variable", rawKey).
				Msg("Ignoring unparseable port from environment")
			return "", nil
		}
		return key, port
	})

	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}
	return nil
}

func envKey(prefix, rawKey string) string {
	key := strings.ToLower(strings.TrimPrefix(rawKey, prefix))
	if key == "port" {
		return "server.port"
	}
	return strings.Replace(key, "_", ".", 1)
}

// FlagSource loads configuration from command-line flags. Only dotted flags
// (server.port, log.level, ...) map to config keys; CLI-only flags such as
// --config or --output are skipped.
// Priority: 40 (highest, overrides all other sources)
type FlagSource struct {
	Flags *pflag.FlagSet
	Debug bool // If true, set log.level to "debug"
}

func (s *FlagSource) Name() string  { return "flags" }
func (s *FlagSource) Priority() int { return 40 }

func (s *FlagSource) Load(k *koanf.Koanf) error {
	if s.Flags != nil {
		provider := posflag.ProviderWithFlag(s.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !strings.Contains(f.Name, ".") {
				return "", nil
			}
			return f.Name, posflag.FlagVal(s.Flags, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return fmt.Errorf("error loading command-line flags: %w", err)
		}
	}

	if s.Debug {
		_ = k.Set("log.level", "debug")
	}

	return nil
}

// DefaultSources returns the standard configuration sources.
// Order: defaults -> file -> env -> flags
func DefaultSources(configPath string, flags *pflag.FlagSet, debug bool) []ConfigSource {
	return []ConfigSource{
		&DefaultSource{},
		&FileSource{Path: configPath},
		&EnvSource{Prefix: EnvPrefix},
		&FlagSource{Flags: flags, Debug: debug},
	}
}

func sortSources(sources []ConfigSource) []ConfigSource {
	sorted := append([]ConfigSource(nil), sources...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return sorted
}
