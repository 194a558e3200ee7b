package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/relocate/internal/config"
	"github.com/katalvlaran/relocate/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP solver",
		Long:  `Serve exposes POST /solve, GET /solve/stream (websocket), /metrics and /healthz.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx)
		},
	}
	cmd.Flags().String(config.FlagName(config.KeyListen), ":8080", "listen address")
	cmd.Flags().String(config.FlagName(config.KeyRedisPassword), "", "redis password")
	cmd.Flags().Int(config.FlagName(config.KeyRedisDB), 0, "redis database")
	cmd.Flags().Duration(config.FlagName(config.KeyRedisTTL), 0, "redis record expiry (0 = keep)")

	return cmd
}

func (a *app) serve(ctx context.Context) error {
	st, err := a.cfg.OpenStore()
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	api, err := httpapi.New(
		httpapi.WithLogger(a.log),
		httpapi.WithStore(st),
		httpapi.WithSearchOptions(a.cfg.SearchOptions()...),
	)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", srv.Addr, "store", a.cfg.Store.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		a.log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			a.log.Warn("graceful shutdown incomplete", "error", err)
			return srv.Close()
		}
	}

	return nil
}
