package main

import (
	"flag"
	"time"
)

// Config holds all runtime configuration derived from flags (future: env vars / file).
type Config struct {
	ListenAddr      string
	MetricsAddr     string
	StaticDir       string
	Debug           bool
	CleanupInterval time.Duration
	// Redis-backed session registry (empty addr = in-memory)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	// admission control (0 = disabled)
	GlobalConnLimit int
	SourceConnLimit int
	RateBurst       int
}

var cfg Config

// init registers flags into the global flag set. main() simply uses cfg.
func init() {
	flag.StringVar(&cfg.ListenAddr, "listen", "localhost:22273", "address for the bridge HTTP/WebSocket listener")
	flag.StringVar(&cfg.MetricsAddr, "metrics", ":9100", "metrics and health listen address")
	flag.StringVar(&cfg.StaticDir, "static", "", "serve static assets from this directory instead of the embedded console")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug logs")
	flag.DurationVar(&cfg.CleanupInterval, "cleanup-interval", 30*time.Second, "interval for sweeping idle rate-limit buckets")
	flag.StringVar(&cfg.RedisAddr, "redis", "", "redis address for fleet-wide session stats; empty keeps stats in memory")
	flag.StringVar(&cfg.RedisPassword, "redis-password", "", "redis password")
	flag.IntVar(&cfg.RedisDB, "redis-db", 0, "redis database number")
	flag.IntVar(&cfg.GlobalConnLimit, "conn-limit", 0, "max new connections per second across all sources (0 = unlimited)")
	flag.IntVar(&cfg.SourceConnLimit, "source-conn-limit", 0, "max new connections per second per source IP (0 = unlimited)")
	flag.IntVar(&cfg.RateBurst, "rate-burst", 10, "burst size for rate limit buckets")
	flag.Parse()
}
