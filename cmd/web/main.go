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

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/glossaryweb/glossary/internal/api"
	"github.com/glossaryweb/glossary/internal/config"
	"github.com/glossaryweb/glossary/internal/core"
	"github.com/glossaryweb/glossary/internal/db"
	"github.com/glossaryweb/glossary/internal/logging"
	"github.com/glossaryweb/glossary/internal/web"
)

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Error loading configuration: %v", err)
	}

	log := logging.New(os.Stdout, cfg.Log.Environment, cfg.Log.Level)
	log.WithField("config", cfg.String()).Debug("configuration loaded")

	// Initialize database
	database, err := db.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.Close()

	count, err := database.Count(context.Background())
	if err != nil {
		log.Fatalf("Error reading glossary: %v", err)
	}

	// Create API handler
	handler := &api.Handler{
		Service: core.NewService(database),
		Log:     log,
	}
	router := api.NewRouter(handler, api.NewMetrics(), web.Handler(), log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	fmt.Printf("Starting glossary web server on http://localhost%s\n", cfg.Addr())
	fmt.Printf("Database: %s (%d items)\n", cfg.Database.Driver, count)
	fmt.Println("\nAPI Endpoints:")
	fmt.Println("  GET    /api/glossaryitems      - List all glossary items")
	fmt.Println("  GET    /api/glossaryitems/{id} - Get glossary item by ID")
	fmt.Println("  POST   /api/glossaryitems      - Create glossary item")
	fmt.Println("  PUT    /api/glossaryitems/{id} - Replace glossary item")
	fmt.Println("  DELETE /api/glossaryitems/{id} - Delete glossary item")
	fmt.Println("  GET    /health                 - Health check")
	fmt.Println("  GET    /metrics                - Prometheus metrics")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("graceful shutdown failed")
		}
	}
}
