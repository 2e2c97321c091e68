package main

import (
	"net"
	"net/http"

	"github.com/wsbridge/wsbridge/internal/obs"
	"github.com/wsbridge/wsbridge/internal/ratelimit"
	"github.com/wsbridge/wsbridge/internal/relay"
	"github.com/wsbridge/wsbridge/internal/server"
)

// handleBridge is the /ws/{port} endpoint: extract the target port, apply
// admission control, then hand the request to the relay session which owns
// everything from subprotocol negotiation to teardown.
func handleBridge(w http.ResponseWriter, r *http.Request, state StateStore, limiter *ratelimit.Limiter) {
	port, err := server.ExtractPort(r.URL.Path, "/ws/")
	if err != nil {
		obs.Error("ws.route", obs.Fields{"path": r.URL.Path, "err": err.Error()})
		obs.ErrorsTotal.WithLabelValues("bad_port").Inc()
		http.NotFound(w, r)
		return
	}
	if !limiter.AllowConnection(remoteIP(r)) {
		obs.Error("ws.ratelimited", obs.Fields{"remote": r.RemoteAddr})
		obs.RateLimitedTotal.Inc()
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}
	sess, err := relay.Accept(w, r, port)
	if err != nil {
		// gorilla already wrote the handshake error response
		obs.Error("ws.upgrade", obs.Fields{"remote": r.RemoteAddr, "err": err.Error()})
		obs.ErrorsTotal.WithLabelValues("upgrade").Inc()
		return
	}
	if err := sess.Connect(); err != nil {
		// session already closed the websocket with code 1011
		obs.ErrorsTotal.WithLabelValues("connect").Inc()
		return
	}
	state.addSession(sess)
	sum := sess.Forward()
	state.removeSession(sess.ID, sum)
}

// remoteIP strips the port from the request's remote address.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
