package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/glowbook/salon-backend/internal/app"
	"github.com/glowbook/salon-backend/internal/config"
	"github.com/glowbook/salon-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB and apply schema
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Wire all modules
	container, err := app.NewContainer(cfg, pool)
	if err != nil {
		log.Fatalf("failed to init application: %v", err)
	}

	// Background obligation loop (reminders, summary, auto-complete,
	// slot generation, feedback)
	if err := container.Scheduler.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	// Let in-flight obligations finish their transactions, then drain
	// queued notifications.
	container.Scheduler.Stop(5 * time.Second)
	container.Notifier.Close()

	log.Println("server exited gracefully")
}
