package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	// DefaultRosterURL is the origin endpoint. The CORS relay used by the browser build is not needed server-side.
	DefaultRosterURL = "https://mmc-clinic.com/dipa/api/mhs.php"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds the runtime settings read from the environment
type Config struct {
	AppPort string

	RosterURL     string
	RosterTimeout time.Duration

	TaskStore     string // "memory" or "redis"
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionSecret string
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s (%q), using default %d", k, v, def)
		return def
	}
	return n
}

func getDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid value for %s (%q), using default %s", k, v, def)
		return def
	}
	return d
}

// Load builds a Config from environment variables, falling back to defaults
func Load() *Config {
	cfg := &Config{
		AppPort: get("APP_PORT", "8080"),

		RosterURL:     get("ROSTER_URL", DefaultRosterURL),
		RosterTimeout: getDuration("ROSTER_TIMEOUT", 15*time.Second),

		TaskStore:     get("TASK_STORE", StoreMemory),
		RedisAddr:     get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 8),

		SessionSecret: get("SESSION_SECRET", ""),
	}
	if cfg.TaskStore != StoreMemory && cfg.TaskStore != StoreRedis {
		log.Printf("Unknown TASK_STORE %q, falling back to %s", cfg.TaskStore, StoreMemory)
		cfg.TaskStore = StoreMemory
	}
	return cfg
}

// SessionKey returns the cookie signing key. Without SESSION_SECRET a random key is
// generated, so sessions do not survive a restart.
func (c *Config) SessionKey() []byte {
	if c.SessionSecret != "" {
		return []byte(c.SessionSecret)
	}
	log.Println("Warning: SESSION_SECRET is not set, using a random per-process session key")
	return securecookie.GenerateRandomKey(32)
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.AppPort
}
