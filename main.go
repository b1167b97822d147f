package main

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"roster-app-go/config"
	"roster-app-go/db"
	"roster-app-go/handlers"
	"roster-app-go/roster"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	tasks := newTaskStore(cfg)

	client := roster.NewClient(cfg.RosterURL, cfg.RosterTimeout)
	screen := roster.NewScreen(client)

	sessionStore := sessions.NewCookieStore(cfg.SessionKey())

	router, err := handlers.NewRouter(screen, tasks, sessionStore)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	log.Printf("Starting server on port %s (roster source %s)", cfg.Addr(), cfg.RosterURL)
	if err := router.Run(cfg.Addr()); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// newTaskStore picks the to-do list backend. Redis is only used when configured.
func newTaskStore(cfg *config.Config) db.TaskStore {
	if cfg.TaskStore != config.StoreRedis {
		log.Println("Using in-memory task store")
		return db.NewMemoryTaskStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := db.InitializeRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	return db.NewRedisTaskStore(client)
}
