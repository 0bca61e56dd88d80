package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"crewmap/internal/config"
	"crewmap/internal/repository/sqlite"
	"crewmap/internal/service"
	"crewmap/internal/ui"
)

var version = "0.1.0"

// app carries the flags shared by every command
type app struct {
	configPath string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "crewmap",
		Short: "Graph viewer for alliances, sets and members",
		Long: ui.Brand.Sprint("crewmap") + ": explore alliances, sets and members as a graph\n" +
			ui.Subtle.Sprint("Serve the interactive viewer, manage the dataset, or render standalone pages"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("crewmap {{ .Version }}\n")
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: search "+config.ConfigFileName+" and XDG paths)")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")

	cmd.AddCommand(
		a.initCmd(),
		a.serveCmd(),
		a.seedCmd(),
		a.exportCmd(),
		renderCmd(),
		hashPasswordCmd(),
	)

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, c.UsageString())
	})

	return cmd
}

// loadConfig reads the --config file, or searches the default locations
func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.configPath != "" {
		cfg, path, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if a.dbPath != "" {
		cfg.Database.Path = a.dbPath
	}

	if path != "" {
		log.Printf("Config loaded: %s", path)
	}
	return cfg, nil
}

// openService opens the database and builds the graph service
func (a *app) openService(cfg *config.Config, bus *service.EventBus) (*service.GraphService, func(), error) {
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	svc := service.NewGraphService(repo, bus)
	svc.SetMemberLimit(cfg.Graph.MemberLimit)

	return svc, func() { repo.Close() }, nil
}
