package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/GauBen/typed-board/config"
	"github.com/GauBen/typed-board/graph"
	"github.com/GauBen/typed-board/schema"
	"github.com/GauBen/typed-board/server"
	"github.com/GauBen/typed-board/store"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(cfgPath *string, verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cfg, *verbose)

			st, err := store.Open(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer st.Close()

			srv, err := server.New(st, graph.MustBuild(schema.Entities()...), logger)
			if err != nil {
				return err
			}

			httpSrv := &http.Server{
				Addr:    cfg.HTTP.Addr,
				Handler: srv.Handler(),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.HTTP.Addr, "driver", cfg.DB.Driver)
				errc <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("http.addr", ":8080", "listen address")
	cmd.Flags().String("db.driver", "sqlite", "database driver (sqlite, postgres, mysql)")
	cmd.Flags().String("db.dsn", "board.db", "database connection string")
	return cmd
}
