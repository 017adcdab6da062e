package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/BerylCAtieno/product-survey/internal/config"
	"github.com/BerylCAtieno/product-survey/internal/menu"
	"github.com/BerylCAtieno/product-survey/internal/profiler"
	"github.com/BerylCAtieno/product-survey/internal/store"
)

// sessionGrace bounds how long an interrupt waits for the session to stop.
const sessionGrace = 500 * time.Millisecond

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.envFile, config.Overrides{CredentialsFile: opts.credentialsFile})
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// openDescriber returns a Gemini-backed profiler when an API key is
// configured. A failed client is logged and the feature stays off.
func openDescriber(ctx context.Context, cfg config.Config) (profiler.Describer, func()) {
	if cfg.GeminiAPIKey == "" {
		return nil, func() {}
	}
	client, err := profiler.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Printf("WARN: persona profiler disabled: %v", err)
		return nil, func() {}
	}
	return client, client.Close
}

// redirectLog sends the standard logger to path so log lines do not
// interleave with the menu. The returned func restores stderr.
func redirectLog(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

func runInteractive(ctx context.Context, opts *rootOptions, in io.Reader, out io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	restoreLog, err := redirectLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer restoreLog()

	s, err := store.Open(ctx, cfg)
	if err != nil {
		log.Printf("ERROR: failed to open %s store: %v", cfg.Store, err)
		return fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	defer s.Close()

	describer, closeDescriber := openDescriber(ctx, cfg)
	defer closeDescriber()

	var menuOpts []menu.Option
	if describer != nil {
		menuOpts = append(menuOpts, menu.WithDescriber(describer))
	}
	ctrl := menu.New(s, in, out, menuOpts...)

	log.Printf("STATE: session started (store=%s)", cfg.Store)

	// A read from the terminal cannot be interrupted, so the session runs
	// aside. On interrupt it gets a short grace period to stop before the
	// store closes; a session still blocked on input after that is abandoned.
	done := make(chan error, 1)
	go func() { done <- ctrl.Run(ctx) }()

	select {
	case err = <-done:
	case <-ctx.Done():
		select {
		case <-done:
		case <-time.After(sessionGrace):
			log.Printf("WARN: session still waiting on input, abandoning it")
		}
	}
	if ctx.Err() != nil {
		log.Printf("STATE: session interrupted")
		fmt.Fprint(out, "\nExiting the program...\n")
		return nil
	}
	log.Printf("STATE: session ended")
	return err
}
