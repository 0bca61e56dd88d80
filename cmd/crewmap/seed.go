package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"crewmap/internal/service"
	"crewmap/internal/ui"
)

func (a *app) seedCmd() *cobra.Command {
	var strategy string

	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Import a dataset file into the database",
		Long: `Import alliances, sets and members from a YAML or JSON file.

With --strategy merge (the default) records are upserted by id. With
--strategy replace every stored record is removed first.

  crewmap seed examples/seed.yaml
  crewmap seed export.json --strategy replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			svc, closeDB, err := a.openService(cfg, service.NewEventBus())
			if err != nil {
				return err
			}
			defer closeDB()

			result, err := svc.ImportFile(cmd.Context(), args[0], strategy)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			ui.Good.Fprintf(out, "%s Imported %s into %s (%s)\n\n",
				ui.StatusIcon(true), args[0], cfg.Database.Path, result.Strategy)
			ui.Table(out, []string{"RECORD", "COUNT"}, [][]string{
				{"alliances", strconv.Itoa(result.Alliances)},
				{"sets", strconv.Itoa(result.Sets)},
				{"members", strconv.Itoa(result.Members)},
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", service.StrategyMerge, "Import strategy: merge or replace")

	return cmd
}
