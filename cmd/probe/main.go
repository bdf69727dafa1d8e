package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/narek-arsh/aura-trends-dashboard/config"
	"github.com/narek-arsh/aura-trends-dashboard/probe"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	if len(cfg.APIKeys) == 0 {
		log.Fatal("no API keys configured, set GEMINI_API_KEYS")
	}

	summary, err := probe.RunOnce(ctx, cfg)
	if err != nil {
		log.Fatalf("probe failed: %v", err)
	}

	log.Println("=== Curation Summary ===")
	log.Printf("Fetched:   %d", summary.Fetched)
	log.Printf("Skipped:   %d", summary.Skipped)
	log.Printf("Evaluated: %d", summary.Evaluated)
	log.Printf("Accepted:  %d", summary.Accepted)
	if summary.Exhausted {
		log.Println("Stopped early: every credential exhausted, rerun later to resume")
	}
	if summary.Cancelled {
		log.Println("Stopped early: run cancelled, undecided articles stay out of the ledger")
	}
	log.Println("========================")
}
