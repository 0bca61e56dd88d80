package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"crewmap/internal/codec"
	"crewmap/internal/service"
)

func (a *app) exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the database as YAML or JSON",
		Long: `Write every stored record as a dataset document that seed can read back.

  crewmap export > backup.yaml
  crewmap export --format json -o backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := codec.ForFormat(format); err != nil {
				return err
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			svc, closeDB, err := a.openService(cfg, service.NewEventBus())
			if err != nil {
				return err
			}
			defer closeDB()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if err := svc.Export(cmd.Context(), w, format); err != nil {
				return fmt.Errorf("failed to export: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}
