package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/BerylCAtieno/product-survey/internal/api"
	"github.com/BerylCAtieno/product-survey/internal/store"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the survey statistics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts, port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")

	return cmd
}

func runServe(ctx context.Context, opts *rootOptions, port string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}

	s, err := store.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	defer s.Close()

	describer, closeDescriber := openDescriber(ctx, cfg)
	defer closeDescriber()

	router := api.NewRouter(api.NewHandler(s, describer))

	ln, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Product survey API starting on port %s (store=%s)", cfg.Port, cfg.Store)
	log.Printf("Likelihood endpoint available at: http://localhost:%s/api/v1/likelihood", cfg.Port)
	if describer == nil {
		log.Printf("WARN: GEMINI_API_KEY not set, persona descriptions disabled")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("STATE: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
