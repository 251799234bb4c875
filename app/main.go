package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bbz662/english-teacher/app/api"
	"github.com/bbz662/english-teacher/app/cfg"
	"github.com/bbz662/english-teacher/app/metrics"
	"github.com/bbz662/english-teacher/app/pipeline"
	"github.com/bbz662/english-teacher/app/tasks"
)

const httpClientTimeout = 2 * time.Minute

func main() {
	c, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if c == nil {
		return
	}

	logLevel := slog.LevelInfo
	if c.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting English Teacher", "version", c.Version, "feed_url", c.FeedURL, "ai_provider", c.AIProvider, "feed_parser", c.FeedParser)
	metrics.Init(c.Version)

	httpClient := &http.Client{Timeout: httpClientTimeout}
	newRunner := func() tasks.Runner {
		return pipeline.New(c, httpClient)
	}

	scheduler := tasks.NewScheduler(c, newRunner)
	scheduler.Start()
	defer scheduler.Stop()

	server := api.NewServer(api.NewHandler(newRunner, c.Version, c.GetTaskTimeout()))

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: c.GetTaskTimeout() + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("English Teacher shutdown complete")
}
