// pkg/logging/logging.go
package logging

import (
	"fmt"
	"io"
	stdLog "log"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Supported values of log.format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// logWriter stores the current log writer globally. Nil means stderr.
	logWriter io.Writer
)

// stdLogWriter forwards output of the standard library logger (net/http
// connection errors, mostly) into zerolog.
type stdLogWriter struct {
	logger zerolog.Logger
}

func (w *stdLogWriter) Write(p []byte) (n int, err error) {
	message := strings.TrimSpace(string(p))
	if message != "" {
		w.logger.Warn().Str("source", "stdlib").Msg(message)
	}
	return len(p), nil
}

// init keeps output at info until ConfigureGlobalLogging applies log.level.
func init() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// ConfigureGlobalLogging configures the global logger from log.level and
// log.format. Text output is human readable, json emits one object per line.
func ConfigureGlobalLogging(levelStr, format string) error {
	level, err := parseLogLevel(levelStr)
	if err != nil {
		return err
	}

	w, err := writerFor(format)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(level)

	logContext := zerolog.New(w).With().Timestamp()
	if level <= zerolog.DebugLevel {
		logContext = logContext.Caller()
	}

	log.Logger = logContext.Logger().Level(level)
	zerolog.DefaultContextLogger = &log.Logger

	stdLog.SetFlags(0)
	stdLog.SetOutput(&stdLogWriter{logger: log.Logger})

	return nil
}

// Component returns the global logger tagged with component. Call it after
// ConfigureGlobalLogging so the configured level and format apply.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}

// parseLogLevel converts a string log level to zerolog.Level. Empty means info.
func parseLogLevel(levelString string) (zerolog.Level, error) {
	if levelString == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(levelString))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", levelString, err)
	}
	return level, nil
}

func writerFor(format string) (io.Writer, error) {
	out := getLogWriter()
	switch strings.ToLower(format) {
	case "", FormatText:
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}, nil
	case FormatJSON:
		return out, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// getLogWriter returns the configured log writer
func getLogWriter() io.Writer {
	if logWriter == nil {
		return os.Stderr
	}
	return logWriter
}

// SetLogWriter sets the global log writer
func SetLogWriter(w io.Writer) {
	logWriter = w
}
