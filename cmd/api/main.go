package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tasks-generator-backend/internal/ai"
	"tasks-generator-backend/internal/config"
	"tasks-generator-backend/internal/db"
	"tasks-generator-backend/internal/status"
	"tasks-generator-backend/internal/tasks"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal("❌ ", err)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:           "tasks-api",
		Short:         "HTTP API that turns a feature description into markdown tasks via Gemini",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Println("No .env file found, using system environment variables")
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a config file (yaml, json or toml)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides ADDR and PORT")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	gemini := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel)
	log.Printf("🤖 Gemini model: %s", gemini.Model)

	var pinger status.Pinger
	if cfg.DatabaseConfigured() {
		database, err := openDatabase(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		pinger = database
	}

	handler := newRouter(
		cfg,
		tasks.New(gemini, cfg.GenerateTimeout),
		status.New(gemini, pinger, cfg.StatusTimeout),
	)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 API server is running on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// openDatabase prepares the pool for the status probe. An unreachable
// database is only a warning; /status reports it.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	database, err := db.Open(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := database.PingContext(pingCtx); err != nil {
		log.Printf("[WARN] database not reachable at startup: %v", err)
	} else {
		log.Println("✅ Connected to PostgreSQL!")
	}

	return database, nil
}
