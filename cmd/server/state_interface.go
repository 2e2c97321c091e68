package main

import "github.com/wsbridge/wsbridge/internal/relay"

// StateStore abstracts session bookkeeping to allow horizontal scaling.
type StateStore interface {
	addSession(s *relay.Session)
	removeSession(id string, sum relay.Summary)
	listSessions() []sessionInfo
	setClosing(closing bool)
	setReady(ready bool)
	isClosing() bool
	isReady() bool
	// stats helpers (not exported outside package main)
	getStats() (active int, totalSessions int64, totalBytes int64)
}
