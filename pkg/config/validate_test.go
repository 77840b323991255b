package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Encryption.Key = testKey
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Key(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"missing", "", ErrMissingKey},
		{"short", strings.Repeat("k", 31), ErrInvalidKeyLength},
		{"long", strings.Repeat("k", 33), ErrInvalidKeyLength},
		// 16 runes but 32 bytes: length is counted in bytes.
		{"multibyte exact", strings.Repeat("é", 16), nil},
		{"multibyte short", strings.Repeat("é", 15) + "x", ErrInvalidKeyLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Encryption.Key = tt.key

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestValidate_KeyNotInError(t *testing.T) {
	cfg := validConfig()
	cfg.Encryption.Key = strings.Repeat("s", 20)

	err := cfg.Validate()
	require.Error(t, err)
	require.NotContains(t, err.Error(), cfg.Encryption.Key)
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 65536 }},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"negative timeout", func(c *Config) { c.Server.ReadTimeout = -1 }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
