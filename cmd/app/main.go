package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to wire commit-canvas api: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("commit-canvas api stopped with error: %v", err)
	}
}
