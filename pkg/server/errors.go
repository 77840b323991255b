package server

import (
	"errors"
	"fmt"

	"github.com/oddeye/oddeye/pkg/config"
	"github.com/oddeye/oddeye/pkg/seal"
)

const (
	errorCodeMissingKey        = "SERVER_MISSING_KEY"
	errorCodeInvalidKey        = "SERVER_INVALID_KEY"
	errorCodeInvalidPort       = "SERVER_INVALID_PORT"
	errorCodeConfigUnavailable = "SERVER_CONFIG_UNAVAILABLE"
	errorCodeInvalidConfig     = "SERVER_INVALID_CONFIG"
	errorCodeAppInitFailed     = "SERVER_INIT_FAILED"
	errorCodeRuntimeFailed     = "SERVER_RUNTIME_FAILED"
)

var (
	// ErrInvalidPort indicates an invalid port value.
	ErrInvalidPort = errors.New("invalid port")
	// ErrConfigUnavailable indicates the CLI context lacked a config manager.
	ErrConfigUnavailable = errors.New("config manager unavailable")
)

type errorCoder interface {
	error
	Code() string
}

type withCodeError struct {
	error
	code string
}

func (e *withCodeError) Code() string {
	return e.code
}

func (e *withCodeError) Unwrap() error {
	return e.error
}

// WithErrorCode annotates err with a server error code.
func WithErrorCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &withCodeError{error: err, code: code}
}

// NewInvalidPortError formats an invalid port error with context.
func NewInvalidPortError(port int) error {
	return WithErrorCode(fmt.Errorf("%w: invalid port %d: must be between 1 and 65535", ErrInvalidPort, port), errorCodeInvalidPort)
}

// WrapInvalidConfig annotates config validation errors. Key problems keep
// their own codes so the CLI can point at the environment variable.
func WrapInvalidConfig(err error) error {
	if err == nil {
		return nil
	}

	code := errorCodeInvalidConfig
	switch {
	case errors.Is(err, config.ErrMissingKey):
		code = errorCodeMissingKey
	case errors.Is(err, config.ErrInvalidKeyLength), errors.Is(err, seal.ErrInvalidKeyLength):
		code = errorCodeInvalidKey
	}
	return WithErrorCode(fmt.Errorf("invalid server configuration: %w", err), code)
}

// WrapAppInit annotates server app creation failures.
func WrapAppInit(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(err, errorCodeAppInitFailed)
}

// WrapRuntime annotates server runtime failures.
func WrapRuntime(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(err, errorCodeRuntimeFailed)
}

// ErrorCode resolves a server error to its error code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var coded errorCoder
	if errors.As(err, &coded) {
		if code := coded.Code(); code != "" {
			return code
		}
	}

	switch {
	case errors.Is(err, config.ErrMissingKey):
		return errorCodeMissingKey
	case errors.Is(err, config.ErrInvalidKeyLength), errors.Is(err, seal.ErrInvalidKeyLength):
		return errorCodeInvalidKey
	case errors.Is(err, ErrInvalidPort):
		return errorCodeInvalidPort
	case errors.Is(err, ErrConfigUnavailable):
		return errorCodeConfigUnavailable
	default:
		return errorCodeRuntimeFailed
	}
}

// ExitCode maps server errors to CLI exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch ErrorCode(err) {
	case errorCodeMissingKey,
		errorCodeInvalidKey,
		errorCodeInvalidPort,
		errorCodeInvalidConfig:
		return 2
	case errorCodeAppInitFailed:
		return 7
	default:
		return 1
	}
}

// Suggestions provides CLI hints for server errors.
func Suggestions(err error) []string {
	if err == nil {
		return nil
	}

	switch ErrorCode(err) {
	case errorCodeMissingKey:
		return []string{
			"Set the sealing key:      export ODD_EYE_ENCRYPTION_KEY=<32 bytes>",
			"Or add encryption.key to the file passed with --config",
		}
	case errorCodeInvalidKey:
		return []string{
			"The key must be exactly 32 bytes (multi-byte characters count per byte)",
			"Generate one:             head -c 24 /dev/urandom | base64",
		}
	case errorCodeInvalidPort:
		return []string{
			"Use a port between 1 and 65535",
			"Example:                 oddeye serve --server.port 8080",
		}
	case errorCodeConfigUnavailable:
		return []string{
			"Run via the oddeye CLI so configuration is loaded first",
		}
	case errorCodeInvalidConfig:
		return []string{
			"Check configuration values in config file",
			"Retry with --debug for detailed validation errors",
		}
	case errorCodeAppInitFailed:
		return []string{
			"Retry with debug logging: oddeye serve --debug",
			"Review configuration for invalid values",
		}
	case errorCodeRuntimeFailed:
		return []string{
			"Check server logs for runtime errors",
			"Ensure no other process is using the selected port",
		}
	default:
		return nil
	}
}
