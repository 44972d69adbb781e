package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"lolbrowser/pkg/config"
	"lolbrowser/scheduler/jobs"
)

// Load the env and revalidate every champion and item on the shared store.
// Meant to be executed once, the scheduler runs the same job daily.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := jobs.RevalidateCache(ctx, cfg); err != nil {
		log.Fatalf("Couldn't revalidate the cache: %v", err)
	}
}
