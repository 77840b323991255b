package format

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// PrintTotalFailureSummary prints a failed operation with its suggestions.
// Example output:
//
//	✗ Failed to start server: invalid server configuration: encryption key is not set
//
//	💡 Suggestions:
//	  → Set the sealing key:      export ODD_EYE_ENCRYPTION_KEY=<32 bytes>
func (f *formatter) PrintTotalFailureSummary(operation string, err error, errorCode string, suggestions []string) error {
	if f.mode == ModeJSON {
		return f.PrintJSON(map[string]any{
			"success":     false,
			"operation":   operation,
			"error":       err.Error(),
			"error_code":  errorCode,
			"suggestions": suggestions,
		})
	}

	var sb strings.Builder

	errorMsg := fmt.Sprintf("✗ Failed to %s: %v", operation, err)
	if f.color {
		sb.WriteString(color.RedString("%s\n", errorMsg))
	} else {
		sb.WriteString(errorMsg + "\n")
	}

	if len(suggestions) > 0 {
		sb.WriteString("\n💡 Suggestions:\n")
		for _, s := range suggestions {
			sb.WriteString(fmt.Sprintf("  → %s\n", s))
		}
	}

	_, writeErr := f.stderr.Write([]byte(sb.String()))
	return writeErr
}
