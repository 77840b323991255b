package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// KeySize is the exact length, in bytes, of the encryption key.
const KeySize = 32

var (
	// ErrMissingKey indicates no encryption key was configured.
	ErrMissingKey = errors.New("encryption key is not set")
	// ErrInvalidKeyLength indicates the key is not exactly KeySize bytes.
	ErrInvalidKeyLength = errors.New("encryption key has the wrong length")
)

var validate = validator.New()

// Validate checks the encryption key and every tagged field. Key length is
// counted in bytes, not characters.
func (c Config) Validate() error {
	if c.Encryption.Key == "" {
		return fmt.Errorf("%w: set %sENCRYPTION_KEY", ErrMissingKey, EnvPrefix)
	}
	if n := len(c.Encryption.Key); n != KeySize {
		return fmt.Errorf("%w: key size = %d, want exactly %d bytes", ErrInvalidKeyLength, n, KeySize)
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
