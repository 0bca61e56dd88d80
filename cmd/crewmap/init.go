package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"crewmap/internal/config"
	"crewmap/internal/ui"
)

func (a *app) initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write a default config file",
		Long: `Write the default configuration so it can be edited.

PATH defaults to --config, then ./` + config.ConfigFileName + `.

  crewmap init
  crewmap init ~/.config/crewmap/config.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName
			switch {
			case len(args) == 1:
				path = args[0]
			case a.configPath != "":
				path = a.configPath
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if a.dbPath != "" {
				cfg.Database.Path = a.dbPath
			}
			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			ui.Good.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", ui.StatusIcon(true), path)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Subtle.Sprint("  set auth.admin_password_hash (see crewmap hash-password) to enable the login gate"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
