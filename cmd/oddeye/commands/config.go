package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oddeye/oddeye/cmd/oddeye/internal/format"
	"github.com/oddeye/oddeye/pkg/appctx"
	serversvc "github.com/oddeye/oddeye/pkg/server"
)

// newConfigCommand creates 'oddeye config', which prints the merged
// configuration and checks it the same way serve does.
func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
ODD_EYE_* environment variables and flags. The encryption key is redacted.

Exits non-zero when the configuration would not start a server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			const operation = "validate configuration"

			cfgMgr, ok := appctx.Config(cmd.Context())
			if !ok {
				return reportFailure(cmd, operation, serversvc.ErrConfigUnavailable)
			}

			formatter := format.FromCommand(cmd)
			effective := cfgMgr.Effective()

			if formatter.Mode() == format.ModeJSON {
				if err := formatter.PrintJSON(effective); err != nil {
					return err
				}
			} else {
				out, err := yaml.Marshal(effective)
				if err != nil {
					return fmt.Errorf("render configuration: %w", err)
				}
				if _, err := cmd.OutOrStdout().Write(out); err != nil {
					return err
				}
			}

			if err := cfgMgr.Get().Validate(); err != nil {
				return reportFailure(cmd, operation, serversvc.WrapInvalidConfig(err))
			}
			return formatter.PrintSummary("✓ Configuration is valid")
		},
	}
}
