package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpDelivery "github.com/modulargunworks/catalog/internal/delivery/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	flagPort          string
	flagIngestOnStart bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog document and an ingest trigger over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagPort, "port", "", "Port to listen on (overrides server.port)")
	serveCmd.Flags().BoolVar(&flagIngestOnStart, "ingest-on-start", false, "Run one ingestion before accepting requests")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagPort != "" {
		cfg.Server.Port = flagPort
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	log := a.logger
	log.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("input", cfg.Input.Path).
		Str("output", cfg.Output.Path).
		Msg("starting catalog server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagIngestOnStart {
		if _, err := a.service.Run(ctx); err != nil {
			log.Warn().Err(err).Msg("initial ingest failed")
		}
	}

	handler := httpDelivery.NewHandler(a.service, a.reader, version)
	router := httpDelivery.SetupRouter(cfg, handler, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
