// Package relay implements the core of the bridge: a per-client session that
// pairs one WebSocket connection with one TCP connection and shuttles bytes
// verbatim in both directions until either side ends.
package relay

import (
	"crypto/rand"
	"encoding/hex"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wsbridge/wsbridge/internal/obs"
)

// Cause classifies why a session's forwarding stopped. Pump failures never
// surface as errors; they are folded into the cause of the pump that finished
// first.
type Cause int

const (
	CauseUnknown Cause = iota
	CausePeerClosed    // clean WebSocket close or empty message
	CauseNormalEOF     // TCP target closed its stream
	CauseLocalError    // WebSocket transport fault
	CauseRemoteError   // TCP transport fault
)

func (c Cause) String() string {
	switch c {
	case CausePeerClosed:
		return "peer-closed"
	case CauseNormalEOF:
		return "normal-eof"
	case CauseLocalError:
		return "local-error"
	case CauseRemoteError:
		return "remote-error"
	}
	return "unknown"
}

// Session owns one WebSocket plus one TCP connection and the pair of pumps
// between them. The TCP connection is never shared or pooled; both transports
// are torn down exactly once regardless of which side ends first.
type Session struct {
	ID      string
	Port    int
	Remote  string
	Started time.Time

	ws  *websocket.Conn
	tcp net.Conn

	closeOnce sync.Once

	// per-direction counters, each written by exactly one pump goroutine and
	// read only after both pumps have finished
	bytesWSToTCP int64
	bytesTCPToWS int64
	msgsWSToTCP  int64
	msgsTCPToWS  int64
}

// Summary describes a finished session.
type Summary struct {
	Cause           Cause
	Duration        time.Duration
	BytesWSToTCP    int64
	BytesTCPToWS    int64
	MessagesWSToTCP int64
	MessagesTCPToWS int64
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  readBufSize,
	WriteBufferSize: readBufSize,
	// The bridge is protocol-agnostic; origin policy belongs to whatever
	// fronts it.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Accept negotiates the subprotocol and upgrades the HTTP request to a
// WebSocket. On upgrade failure gorilla has already written the handshake
// error response.
func Accept(w http.ResponseWriter, r *http.Request, port int) (*Session, error) {
	var hdr http.Header
	if sp := SelectSubprotocol(websocket.Subprotocols(r)); sp != "" {
		hdr = http.Header{"Sec-WebSocket-Protocol": []string{sp}}
	}
	ws, err := upgrader.Upgrade(w, r, hdr)
	if err != nil {
		return nil, err
	}
	id, _ := randomID(8)
	s := &Session{ID: id, Port: port, Remote: r.RemoteAddr, ws: ws}
	obs.Info("session.accept", obs.Fields{"id": s.ID, "port": port, "remote": s.Remote, "subprotocol": ws.Subprotocol()})
	return s, nil
}

// Connect dials the target port. On failure the WebSocket is closed with
// close code 1011 (internal error) and the session is over; no pumps start.
func (s *Session) Connect() error {
	tcp, err := Dial(s.Port)
	if err != nil {
		obs.Error("session.connect", obs.Fields{"id": s.ID, "port": s.Port, "err": err.Error()})
		obs.ConnectFailures.Inc()
		s.sendClose(websocket.CloseInternalServerErr)
		_ = s.ws.Close()
		return err
	}
	s.tcp = tcp
	s.Started = time.Now()
	obs.SessionsTotal.Inc()
	return nil
}

// Forward runs both pumps concurrently and waits for the first to finish.
// The first completion wins: the surviving pump is cancelled by closing both
// transports, which unblocks its pending read or write. The losing pump's
// cause is discarded.
func (s *Session) Forward() Summary {
	start := time.Now()
	first := make(chan Cause, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); first <- s.pumpWSToTCP() }()
	go func() { defer wg.Done(); first <- s.pumpTCPToWS() }()

	cause := <-first
	s.shutdown()
	wg.Wait()

	sum := Summary{
		Cause:           cause,
		Duration:        time.Since(start),
		BytesWSToTCP:    s.bytesWSToTCP,
		BytesTCPToWS:    s.bytesTCPToWS,
		MessagesWSToTCP: s.msgsWSToTCP,
		MessagesTCPToWS: s.msgsTCPToWS,
	}
	obs.SessionDuration.Observe(sum.Duration.Seconds())
	obs.Info("session.closed", obs.Fields{
		"id":        s.ID,
		"port":      s.Port,
		"cause":     cause.String(),
		"ws_to_tcp": sum.BytesWSToTCP,
		"tcp_to_ws": sum.BytesTCPToWS,
		"ms":        sum.Duration.Milliseconds(),
	})
	return sum
}

// Bridge runs the pump pair over an already-established connection pair and
// tears both down when either side ends. Used by the companion client, which
// dials the WebSocket itself.
func Bridge(ws *websocket.Conn, tcp net.Conn) Summary {
	id, _ := randomID(8)
	s := &Session{ID: id, ws: ws, tcp: tcp}
	return s.Forward()
}

// shutdown closes both transports. Idempotent; both pumps and the coordinator
// may race to get here, close errors are always swallowed.
func (s *Session) shutdown() {
	s.closeOnce.Do(func() {
		_ = s.tcp.Close()
		_ = s.ws.Close()
	})
}

func randomID(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
