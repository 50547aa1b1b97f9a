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
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Stderr))
}

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

	faceApp, err := app.NewFaceApp(cfg, log)
	if err != nil {
		log.Error("Failed to start: %v", err)
		return 1
	}
	defer faceApp.Close()

	faces, err := faceApp.Run(ctx)
	if err != nil {
		log.Error("%v", err)
		return 1
	}
	log.Info("Done, %d face(s) marked", len(faces))
	return 0
}
