// pkg/cli/version.go
// Package cli provides CLI commands shared by oddeye binaries.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	v "github.com/oddeye/oddeye/pkg/version"
)

// NewVersionCommand returns the "version" subcommand.
func NewVersionCommand(cliExecutable string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			info := v.Get()
			_, _ = fmt.Fprintf(out, "%s version: %s\n", cliExecutable, info.Version)
			if short {
				return
			}
			if info.Commit != "" {
				_, _ = fmt.Fprintf(out, "Commit: %s\n", info.Commit)
			}
			_, _ = fmt.Fprintf(out, "Build Date: %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(out, "Go Version: %s\n", info.GoVersion)
			_, _ = fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")

	return cmd
}
