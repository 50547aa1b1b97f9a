package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"roadcheck/internal/app"
	"roadcheck/internal/config"
	"roadcheck/internal/logger"
)

func init() {
	// gocv windows must live on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Stderr))
}

// run executes the pipeline once and returns the process exit code.
// Returning instead of exiting lets the deferred log file close run.
func run(stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		logger.New(stderr).Error("Failed to load config: %v", err)
		return 1
	}

	log, err := logger.NewWithFile(stderr, cfg.LogDirectory)
	if err != nil {
		logger.New(stderr).Error("Failed to create logger: %v", err)
		return 1
	}
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("Failed to start: %v", err)
		return 1
	}
	defer application.Close()

	if _, err := application.Run(ctx); err != nil {
		log.Error("%v", err)
		return 1
	}
	return 0
}
