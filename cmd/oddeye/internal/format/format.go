// Package format renders CLI results for humans (table mode) or machines
// (JSON mode).
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputMode defines the output format for CLI commands
type OutputMode string

const (
	// ModeJSON outputs data as JSON
	ModeJSON OutputMode = "json"
	// ModeTable outputs human readable text
	ModeTable OutputMode = "table"
)

// ParseMode maps a flag value to an OutputMode. Unknown values mean table.
func ParseMode(s string) OutputMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeJSON)) {
		return ModeJSON
	}
	return ModeTable
}

// Formatter provides consistent output formatting across CLI commands
type Formatter interface {
	// Mode reports the active output mode
	Mode() OutputMode

	// PrintJSON outputs data as JSON to stdout
	PrintJSON(data any) error

	// PrintSummary outputs a summary message to stdout
	PrintSummary(message string) error

	// PrintTotalFailureSummary reports a failed operation with hints
	PrintTotalFailureSummary(operation string, err error, errorCode string, suggestions []string) error
}

// formatter implements the Formatter interface
type formatter struct {
	stdout io.Writer
	stderr io.Writer
	mode   OutputMode
	color  bool
}

// New creates a new Formatter
func New(stdout, stderr io.Writer, mode OutputMode, color bool) Formatter {
	return &formatter{
		stdout: stdout,
		stderr: stderr,
		mode:   mode,
		color:  color,
	}
}

// FromCommand builds a Formatter using cobra command output/error writers and
// the --output and --no-color flags when present.
func FromCommand(cmd *cobra.Command) Formatter {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	outputMode := ModeTable
	if flag := cmd.Flags().Lookup("output"); flag != nil {
		outputMode = ParseMode(flag.Value.String())
	}

	useColor := true
	if flag := cmd.Flags().Lookup("no-color"); flag != nil {
		if val, err := strconv.ParseBool(flag.Value.String()); err == nil && val {
			useColor = false
		}
	}

	// Cobra defaults to stderr being nil in some paths; ensure we have a fallback.
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return New(stdout, stderr, outputMode, useColor)
}

func (f *formatter) Mode() OutputMode {
	return f.mode
}

// PrintJSON outputs data as JSON to stdout
func (f *formatter) PrintJSON(data any) error {
	enc := json.NewEncoder(f.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintSummary outputs a summary message. In JSON mode it goes to stderr so
// stdout stays machine readable.
func (f *formatter) PrintSummary(message string) error {
	if f.mode == ModeJSON {
		_, err := fmt.Fprintln(f.stderr, message)
		return err
	}

	if f.color {
		_, err := color.New(color.FgGreen).Fprintln(f.stdout, message)
		return err
	}

	_, err := fmt.Fprintln(f.stdout, message)
	return err
}
