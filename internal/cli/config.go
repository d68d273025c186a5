package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MacroPower/versionsync/pkg/config"
	"github.com/MacroPower/versionsync/pkg/syncerrors"
)

// NewConfigCmd returns the config command.
func NewConfigCmd(arg *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "config",
		Short:        "Inspect the project configuration",
		SilenceUsage: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			js, err := config.Schema()
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(js))

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := loadProject(arg)
			if err != nil {
				return err
			}

			out, err := cfg.YAML()
			if err != nil {
				return err
			}

			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return fmt.Errorf("%w: %w", syncerrors.ErrWrite, err)
			}

			return nil
		},
	})

	return cmd
}
