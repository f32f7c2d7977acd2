package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/shelldon/internal/config"
	"github.com/quocvuong92/shelldon/internal/display"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config directory and a commented config file",
		Long: `Create the configuration directory, the prompts directory and a
config.yaml listing every setting with its default.

Examples:
  shelldon init
  shelldon --config-dir ./.shelldon init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(); err != nil {
				return err
			}
			path, err := config.CreateDefaultConfigFile(app.cfg.ConfigDir)
			if err != nil {
				return err
			}
			display.ShowSuccess(fmt.Sprintf("Created %s", path))
			return nil
		},
	}
}
