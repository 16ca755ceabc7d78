package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeviz/internal/server"
	"github.com/matzehuels/treeviz/pkg/observability"
)

// shutdownTimeout bounds graceful shutdown after an interrupt.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command for the HTTP surface.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		allowAll bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve scenes and rendered trees over HTTP",
		Long: `Start the treeviz HTTP server.

Endpoints:
  POST /v1/scenes?width=N            tree JSON in, scene JSON out
  POST /v1/render/{format}?width=N   tree JSON in, svg/png/pdf/json/dot out
  GET  /healthz
  GET  /metrics                      Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("cors-allow-all") {
				cfg.CORSAllowAll = allowAll
			}
			return c.runServe(cmd, cfg.Addr, cfg.CORSAllowAll, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&allowAll, "cors-allow-all", false, "allow all CORS origins")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, allowAll, noCache bool) error {
	ctx := cmd.Context()
	hooks, err := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	hooks.RegisterAll()
	defer observability.Reset()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	th, err := c.loadTheme("")
	if err != nil {
		return err
	}

	defaults := c.pipelineOptions()
	defaults.Logger = nil
	srv := server.New(server.Config{
		Addr:         addr,
		AllowAll:     allowAll,
		Timeout:      c.Config.Server.Timeout,
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		Defaults:     defaults,
		Theme:        th,
	}, runner, c.Logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	p := newPrinter(cmd)
	p.success("Listening on %s", addr)
	p.detail("POST /v1/scenes · POST /v1/render/{format} · GET /metrics")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
