package relay

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wsbridge/wsbridge/internal/obs"
)

// readBufSize bounds a single TCP read; each read becomes one WebSocket message.
const readBufSize = 4096

// closeGrace is how long a best-effort close frame write may take.
const closeGrace = time.Second

// pumpWSToTCP forwards WebSocket messages to the TCP stream until the peer
// closes, sends an empty payload, or a transport fault occurs. Faults are
// logged, never propagated. On exit the TCP write side is half-closed so the
// target always observes EOF after a client-initiated close.
func (s *Session) pumpWSToTCP() Cause {
	defer halfCloseTCP(s.tcp)
	for {
		_, payload, err := s.ws.ReadMessage()
		if err != nil {
			if isExpectedClose(err) {
				return CausePeerClosed
			}
			obs.Debug("pump.ws_read", obs.Fields{"id": s.ID, "err": err.Error()})
			return CauseLocalError
		}
		if len(payload) == 0 {
			// Treated the same as a clean close.
			return CausePeerClosed
		}
		// net.Conn.Write returns once the bytes are handed to the kernel;
		// this is the only backpressure coupling between the transports.
		if _, err := s.tcp.Write(payload); err != nil {
			obs.Debug("pump.tcp_write", obs.Fields{"id": s.ID, "err": err.Error()})
			return CauseRemoteError
		}
		s.bytesWSToTCP += int64(len(payload))
		s.msgsWSToTCP++
		obs.BytesForwarded.WithLabelValues("ws_to_tcp").Add(float64(len(payload)))
		obs.MessagesForwarded.WithLabelValues("ws_to_tcp").Inc()
	}
}

// pumpTCPToWS forwards TCP byte chunks to the WebSocket, one binary message
// per read, with no re-framing or coalescing. A zero-length read (EOF) ends
// the pump normally. On exit a normal-closure frame is offered to the client
// so a target-side close always propagates.
func (s *Session) pumpTCPToWS() Cause {
	defer s.sendClose(websocket.CloseNormalClosure)
	buf := make([]byte, readBufSize)
	for {
		n, err := s.tcp.Read(buf)
		if n > 0 {
			if werr := s.ws.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				obs.Debug("pump.ws_write", obs.Fields{"id": s.ID, "err": werr.Error()})
				return CauseLocalError
			}
			s.bytesTCPToWS += int64(n)
			s.msgsTCPToWS++
			obs.BytesForwarded.WithLabelValues("tcp_to_ws").Add(float64(n))
			obs.MessagesForwarded.WithLabelValues("tcp_to_ws").Inc()
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return CauseNormalEOF
			}
			obs.Debug("pump.tcp_read", obs.Fields{"id": s.ID, "err": err.Error()})
			return CauseRemoteError
		}
	}
}

// sendClose offers a close frame to the client. Errors are discarded; the
// socket may already be gone.
func (s *Session) sendClose(code int) {
	msg := websocket.FormatCloseMessage(code, "")
	_ = s.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
}

// halfCloseTCP shuts the write side so the target sees EOF while its own
// in-flight data can still drain. Falls back to a full close for non-TCP conns.
func halfCloseTCP(c net.Conn) {
	if tc, ok := c.(*net.TCPConn); ok {
		_ = tc.CloseWrite()
		return
	}
	_ = c.Close()
}

// isExpectedClose reports whether a read error is a clean peer close rather
// than a transport fault.
func isExpectedClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived)
}
