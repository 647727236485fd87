package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/api"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/events"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API over one in-memory session.
var serveCmd = &cobra.Command{
	Use:   "serve [files...]",
	Short: "Serve the scorecard session over HTTP.",
	Long: `Start an HTTP API holding one in-memory session until the process exits.

Files given on the command line are imported before the server starts.
Health and Prometheus metrics are served on a separate address.
When --nats-url is set, session changes are published as NATS events.

Routes under /api/v1:
  GET  /criteria                  PUT /criteria/{name}/weight
  GET  /entries                   POST /entries
  POST /imports                   GET /dashboard
  GET  /compare/options           GET /compare?name=A&name=B
  GET  /export/{format}

Examples:
  # Serve a preloaded team file
  scorecard serve team.csv --addr :8080

  # Publish session events
  scorecard serve --nats-url nats://localhost:4222`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runServer(rootCtx); err != nil {
			contract.LogFatal("Cannot run server", err)
		}
	},
}

// runServer serves the API and metrics until SIGINT or SIGTERM.
func runServer(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []core.SessionOption
	if cfg.NATSURL != "" {
		publisher, err := events.NewNATSPublisher(ctx, cfg.NATSURL, logger)
		if err != nil {
			logger.Warn("failed to connect to nats, running without events", "error", err)
		} else {
			defer publisher.Close()
			opts = append(opts, core.WithPublisher(publisher))
			logger.Info("connected to nats", "url", cfg.NATSURL)
		}
	}

	session, report, err := core.LoadSession(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	logger.Info("session ready", "session_id", session.ID(), "entries", session.Len(), "failed_files", report.Failed())

	apiServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(session, historyManager, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           api.NewMetricsRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	for name, srv := range map[string]*http.Server{"API": apiServer, "metrics": metricsServer} {
		go func() {
			logger.Info(name+" server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("%s server: %w", name, err)
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err = <-errCh:
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
	logger.Info("shutdown complete")
	return err
}
