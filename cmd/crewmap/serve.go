package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"crewmap/internal/auth"
	"crewmap/internal/config"
	"crewmap/internal/graphview"
	"crewmap/internal/handler"
	"crewmap/internal/hub"
	"crewmap/internal/metrics"
	"crewmap/internal/service"
	"crewmap/internal/ui"
	"crewmap/internal/watcher"
)

// shutdownTimeout bounds graceful shutdown
const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	addr     string
	upstream string
	output   string
	format   string
}

func (a *app) serveCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the graph viewer",
		Long: `Serve the interactive graph viewer, the records API and detail pages.

The graph view loads once in the background, from this server's own
/api/graph or from --upstream when set.

  crewmap serve
  crewmap serve --addr :8080
  crewmap serve --upstream http://records.internal:8000
  crewmap serve --output graph.html   # also keep a standalone page on disk`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Server.Addr = opts.addr
			}
			if opts.upstream != "" {
				cfg.Graph.Upstream = opts.upstream
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ui.Banner(cmd.OutOrStdout(), "serve")
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Summary())
			fmt.Fprintln(cmd.OutOrStdout())

			return a.serve(ctx, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&opts.upstream, "upstream", "", "Base URL of the service providing /api/graph (overrides config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Also render the view to this file on every change")
	cmd.Flags().StringVar(&opts.format, "format", "vis", "Output file format: vis or echarts")

	return cmd
}

func (a *app) serve(ctx context.Context, cfg *config.Config, opts *serveOptions) error {
	log.Println("Starting crewmap server...")

	eventBus := service.NewEventBus()
	svc, closeDB, err := a.openService(cfg, eventBus)
	if err != nil {
		return err
	}
	defer closeDB()
	log.Printf("Database opened: %s", cfg.Database.Path)

	reg := metrics.DefaultRegistry()

	// Connect event bus to SSE hub
	sseHub := hub.New()
	sseHub.OnClientCount = reg.SetSSEClients
	go sseHub.Run(ctx)

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-ctx.Done():
				return
			}
		}
	}()

	if cfg.Seed.Path != "" {
		result, err := svc.ImportFile(ctx, cfg.Seed.Path, service.StrategyMerge)
		reg.RecordImport(service.StrategyMerge, err)
		if err != nil {
			return fmt.Errorf("failed to import seed: %w", err)
		}
		log.Printf("Seed imported: %d alliances, %d sets, %d members", result.Alliances, result.Sets, result.Members)

		if cfg.Seed.Watch {
			w := watcher.New(cfg.Seed.Path, func() {
				_, err := svc.ReloadFile(ctx, cfg.Seed.Path)
				reg.RecordImport(service.StrategyReplace, err)
				if err != nil {
					log.Printf("Failed to reload seed: %v", err)
				}
			})
			go func() {
				if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("Seed watcher stopped: %v", err)
				}
			}()
		}
	}

	view, err := newServeView(cfg, svc, opts)
	if err != nil {
		return err
	}
	view.AddObserver(reg)
	view.AddObserver(service.NewViewEvents(eventBus))

	// Pages wait for view_loaded while the first load is pending. Imports,
	// seed reloads and record writes refetch the graph afterwards.
	go view.Load(ctx)
	service.OnGraphChange(ctx, eventBus, view.Reload)

	gate, sessions, err := newLoginGate(cfg)
	if err != nil {
		return err
	}

	router := handler.NewRouter(handler.Deps{
		Service:  svc,
		View:     view,
		Events:   sseHub,
		Metrics:  reg,
		Gate:     gate,
		Sessions: sessions,
		LinkBase: cfg.Graph.Upstream,
	})

	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}

// newServeView builds the view over the configured graph source
func newServeView(cfg *config.Config, svc *service.GraphService, opts *serveOptions) (*graphview.View, error) {
	var src graphview.Source = graphview.SourceFunc(svc.GetGraph)
	if cfg.Graph.Upstream != "" {
		httpSrc := graphview.NewHTTPSource(cfg.Graph.Upstream, nil)
		log.Printf("Graph source: %s", httpSrc.URL())
		src = httpSrc
	}

	view := graphview.NewView(src)

	if opts.output != "" {
		format, err := graphview.ParseFormat(opts.format)
		if err != nil {
			return nil, err
		}
		view.SetRenderer(graphview.NewFileRenderer(opts.output, graphview.WriterFor(format, graphview.HTMLOptions{
			LinkBase: cfg.Graph.Upstream,
		})))
	}

	return view, nil
}

// newLoginGate builds the password gate and session manager. Without a
// configured secret, sessions are signed with a per-process key and do not
// survive restarts.
func newLoginGate(cfg *config.Config) (*auth.Gate, *auth.SessionManager, error) {
	gate, err := auth.NewGate(cfg.Auth.AdminPasswordHash, cfg.Auth.AdminPassword)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	if !gate.Enabled() {
		return gate, nil, nil
	}

	secret := cfg.Auth.SecretKey
	if secret == "" {
		log.Printf("Warning: %s not set, sessions will not survive a restart", config.EnvSecretKey)
		secret = uuid.NewString() + uuid.NewString()
	}

	sessions, err := auth.NewSessionManager(secret, cfg.Auth.SessionTTL.Duration())
	if err != nil {
		return nil, nil, err
	}
	return gate, sessions, nil
}
