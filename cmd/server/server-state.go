package main

import (
	"sync"

	"github.com/wsbridge/wsbridge/internal/obs"
	"github.com/wsbridge/wsbridge/internal/relay"
)

// serverState is the in-memory StateStore used when no Redis address is
// configured. Suitable for a single instance.
type serverState struct {
	mu            sync.Mutex
	sessions      map[string]sessionInfo // session id -> info
	closing       bool
	ready         bool
	totalSessions int64
	totalBytes    int64
}

func newServerState() *serverState {
	return &serverState{sessions: make(map[string]sessionInfo)}
}

func (s *serverState) addSession(sess *relay.Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sessionInfo{id: sess.ID, port: sess.Port, remote: sess.Remote, started: sess.Started}
	s.totalSessions++
	n := len(s.sessions)
	s.mu.Unlock()
	obs.ActiveSessions.Set(float64(n))
}

func (s *serverState) removeSession(id string, sum relay.Summary) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.totalBytes += sum.BytesWSToTCP + sum.BytesTCPToWS
	n := len(s.sessions)
	s.mu.Unlock()
	obs.ActiveSessions.Set(float64(n))
}

func (s *serverState) listSessions() []sessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sessionInfo, 0, len(s.sessions))
	for _, info := range s.sessions {
		out = append(out, info)
	}
	return out
}

func (s *serverState) setClosing(closing bool) { s.mu.Lock(); s.closing = closing; s.mu.Unlock() }
func (s *serverState) setReady(ready bool)     { s.mu.Lock(); s.ready = ready; s.mu.Unlock() }
func (s *serverState) isClosing() bool         { s.mu.Lock(); defer s.mu.Unlock(); return s.closing }
func (s *serverState) isReady() bool           { s.mu.Lock(); defer s.mu.Unlock(); return s.ready }

func (s *serverState) getStats() (int, int64, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions), s.totalSessions, s.totalBytes
}

var _ StateStore = (*serverState)(nil)
