package main

import (
	"flag"
	"strings"
)

// Config holds client runtime configuration.
type Config struct {
	ListenAddr string
	ServerURL  string
	Port       int
}

var cfg Config

// init registers all client flags into the default flag set.
func init() {
	flag.StringVar(&cfg.ListenAddr, "listen", "127.0.0.1:3000", "local TCP address to listen on")
	flag.StringVar(&cfg.ServerURL, "server", "ws://127.0.0.1:22273", "bridge server base URL (ws:// or wss://)")
	flag.IntVar(&cfg.Port, "port", 0, "target TCP port on the bridge server's host (required)")
	flag.Parse()
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
}
