// The client exposes a remote bridge target as a plain local TCP listener:
// every accepted connection is dialed through the server's /ws/{port}
// endpoint and bridged byte-for-byte, so tools that only speak TCP can reach
// services behind a wsbridge server.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/wsbridge/wsbridge/internal/relay"
)

func main() {
	if cfg.Port < 1 || cfg.Port > 65535 {
		log.Fatalf("missing or invalid -port: %d", cfg.Port)
	}
	endpoint := fmt.Sprintf("%s/ws/%d", cfg.ServerURL, cfg.Port)

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalf("listen %s: %v", cfg.ListenAddr, err)
	}
	log.Printf("wsbridge client listening on %s, bridging to %s", cfg.ListenAddr, endpoint)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		c, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				log.Printf("shutting down")
				return
			default:
			}
			log.Printf("accept error: %v", err)
			return
		}
		go handleConn(c, endpoint)
	}
}

func handleConn(c net.Conn, endpoint string) {
	dialer := websocket.Dialer{Subprotocols: []string{"binary"}}
	ws, _, err := dialer.Dial(endpoint, nil)
	if err != nil {
		log.Printf("dial %s: %v", endpoint, err)
		_ = c.Close()
		return
	}
	log.Printf("bridging %s (subprotocol %q)", c.RemoteAddr(), ws.Subprotocol())
	sum := relay.Bridge(ws, c)
	log.Printf("closed %s cause=%s sent=%d received=%d",
		c.RemoteAddr(), sum.Cause, sum.BytesTCPToWS, sum.BytesWSToTCP)
}
