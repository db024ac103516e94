package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/patchstorage/patchbot/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage patchbot configuration",
	}
	cmd.AddCommand(newConfigInitCommand(), newConfigShowCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := MustApp()

			path := config.DefaultConfigFile
			if cfgFile != "" {
				path = cfgFile
			}

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists; use --force to overwrite", path)
				}
			}

			if err := app.Config.Save(path); err != nil {
				return err
			}
			app.Out.Success("wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := MustApp()

			if app.Out.IsJSON() {
				return app.Out.JSON(app.Config)
			}

			data, err := yaml.Marshal(app.Config)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			app.Out.Print("%s", data)
			return nil
		},
	}
}
