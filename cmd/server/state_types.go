package main

import "time"

// sessionInfo is the registry's view of one live bridge session. The sockets
// themselves stay with the relay; the registry only does bookkeeping.
type sessionInfo struct {
	id      string
	port    int
	remote  string
	started time.Time
}
