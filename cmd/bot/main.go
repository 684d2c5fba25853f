package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"keygate/internal/app/bootstrap"
)

// Bot process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (roster + domain services + telegram client).
// 3) Long-poll the operator command channel until interrupted.
func main() {
	log.Println("keygate bot starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.BuildBot(ctx)
	if err != nil {
		log.Fatalf("bootstrap bot failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("bot shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("keygate bot stopped with error: %v", err)
	}
}
