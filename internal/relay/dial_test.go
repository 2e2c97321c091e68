package relay

import (
	"errors"
	"net"
	"testing"
)

func TestDialReachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	c, err := Dial(port)
	if err != nil {
		t.Fatalf("Dial(%d): %v", port, err)
	}
	c.Close()
}

func TestDialRefused(t *testing.T) {
	// Grab a free port, then close the listener so nothing is there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	_, err = Dial(port)
	if err == nil {
		t.Fatalf("Dial(%d): expected error for closed port", port)
	}
	var ce *ConnectError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConnectError, got %T: %v", err, err)
	}
	if ce.Port != port {
		t.Errorf("ConnectError.Port = %d, want %d", ce.Port, port)
	}
	if ce.Unwrap() == nil {
		t.Error("ConnectError should wrap the underlying cause")
	}
}
