package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/narek-arsh/aura-trends-dashboard/api"
	"github.com/narek-arsh/aura-trends-dashboard/config"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	cfg := config.FromEnv()
	srv, err := api.NewServer(cfg)
	if err != nil {
		log.Fatalf("failed to load stores: %v", err)
	}

	r := srv.Router()
	log.Printf("Starting dashboard API on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/trends")
	log.Println("  GET  /api/trends/categories")
	log.Println("  GET  /api/saved")
	log.Println("  POST /api/saved/toggle")
	log.Println("  POST /api/probe/refresh")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
