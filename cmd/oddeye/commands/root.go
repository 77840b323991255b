// Package commands wires the oddeye cobra command tree.
package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/oddeye/oddeye/pkg/appctx"
	"github.com/oddeye/oddeye/pkg/cli"
	"github.com/oddeye/oddeye/pkg/config"
	serversvc "github.com/oddeye/oddeye/pkg/server"
)

const cliExecutable = "oddeye"

// NewCommand constructs the top-level oddeye command. Running it without a
// subcommand serves, like "oddeye serve".
func NewCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   cliExecutable,
		Short: "Seal passive client fingerprints for transport",
		Long: `oddeye captures the passive fingerprint of each HTTP request (HTTP and TLS
fingerprints forwarded by the edge proxy, User-Agent and header names),
seals it with ChaCha20-Poly1305 and returns the opaque record to the caller.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			mgr := config.NewManager()
			if err := mgr.Load(cmd.Flags(), configFile); err != nil {
				return reportFailure(cmd, "load configuration", serversvc.WrapInvalidConfig(err))
			}

			ctx := appctx.WithConfig(cmd.Context(), mgr)
			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	cmd.PersistentFlags().StringP("output", "o", "table", "Output format for failures and reports: table|json")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	config.BindFlags(cmd.PersistentFlags())
	config.BindServerFlags(cmd.PersistentFlags())

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(cli.NewVersionCommand(cliExecutable))

	return cmd
}

// reportedError marks an error whose failure summary was already printed.
type reportedError struct {
	error
}

func (e *reportedError) Unwrap() error {
	return e.error
}

// Reported reports whether err was already shown to the user.
func Reported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}
