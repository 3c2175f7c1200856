package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/erazemk/carrental/internal/api"
	"github.com/erazemk/carrental/internal/config"
	"github.com/erazemk/carrental/internal/db"
	"github.com/erazemk/carrental/internal/service"
	"github.com/erazemk/carrental/internal/store"
	"github.com/erazemk/carrental/internal/web"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	closeLog, err := setupLogger(cfg.LogPath, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		closeLog()
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.Migrate(ctx, database); err != nil {
		return err
	}
	version, err := db.SchemaVersion(ctx, database)
	if err != nil {
		return err
	}
	slog.Info("database ready", "path", cfg.DBPath, "schema_version", version)

	st := store.New(database)

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := st.GetJWTSecret(ctx)
	if err != nil {
		return fmt.Errorf("getting JWT secret: %w", err)
	}

	svc := service.New(st, jwtSecret, service.Options{
		StrictTransitions: cfg.StrictTransitions,
		SyncCarStatus:     cfg.SyncCarStatus,
	})

	password, err := svc.Accounts.EnsureAdmin(ctx, cfg.AdminUser)
	if err != nil {
		return err
	}
	if password != "" {
		printAdminCredentials(cfg.AdminUser, password)
	}

	webRouter, err := web.NewRouter(svc, cfg.SecureCookies)
	if err != nil {
		return fmt.Errorf("setting up web router: %w", err)
	}

	// API routes take priority, web routes handle the rest.
	root := chi.NewRouter()
	root.Use(middleware.RequestID)
	root.Use(api.LoggingMiddleware)
	root.Handle("/api/*", api.NewRouter(svc))
	root.Mount("/", webRouter)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           root,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server started", "addr", cfg.Addr,
			"strict_transitions", cfg.StrictTransitions, "sync_car_status", cfg.SyncCarStatus)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped, closing database")
	return nil
}

// printAdminCredentials prints the generated first-run admin account.
func printAdminCredentials(username, password string) {
	fmt.Println("Admin account created:")
	fmt.Printf("  Username: %s\n", username)
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("The admin can change it after logging in.")
	fmt.Println()
}
