package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucket(t *testing.T) {
	bucket := NewTokenBucket(2, 5) // 2 tokens per second, capacity of 5

	// Initial tokens should be at capacity
	for i := 0; i < 5; i++ {
		if !bucket.Allow() {
			t.Errorf("Expected initial request %d to be allowed", i)
		}
	}

	// Next request should be denied (bucket empty)
	if bucket.Allow() {
		t.Error("Expected request to be denied when bucket is empty")
	}

	// Wait and check if tokens are refilled
	time.Sleep(1100 * time.Millisecond)

	if !bucket.Allow() {
		t.Error("Expected request to be allowed after token refill")
	}
	if !bucket.Allow() {
		t.Error("Expected second request to be allowed after token refill")
	}
	if bucket.Allow() {
		t.Error("Expected third request to be denied")
	}
}

func TestLimiterPerSource(t *testing.T) {
	l := New(0, 2, 3) // no global limit; per-source 2/s, burst 3

	source := "203.0.113.7"
	for i := 0; i < 3; i++ {
		if !l.AllowConnection(source) {
			t.Errorf("Expected connection %d to be allowed for %s", i, source)
		}
	}
	if l.AllowConnection(source) {
		t.Error("Expected connection to be denied once the source burst is spent")
	}

	// A different source has its own bucket
	if !l.AllowConnection("198.51.100.9") {
		t.Error("Expected connection to be allowed for a different source")
	}
}

func TestLimiterGlobal(t *testing.T) {
	l := New(2, 0, 2) // global 2/s, burst 2; per-source disabled

	if !l.AllowConnection("a") {
		t.Error("Expected first global connection to be allowed")
	}
	if !l.AllowConnection("b") {
		t.Error("Expected second global connection to be allowed")
	}
	if l.AllowConnection("a") {
		t.Error("Expected connection to be denied once the global burst is spent")
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := New(0, 0, 5)
	for i := 0; i < 100; i++ {
		if !l.AllowConnection("anyone") {
			t.Errorf("Expected connection %d to be allowed when limits disabled", i)
		}
	}
}

func TestLimiterSweep(t *testing.T) {
	l := New(0, 1, 1)
	l.AllowConnection("a")
	l.AllowConnection("b")
	if len(l.perSource) != 2 {
		t.Fatalf("Expected 2 per-source buckets, got %d", len(l.perSource))
	}

	// Nothing is older than an hour yet
	if removed := l.Sweep(time.Hour); removed != 0 {
		t.Errorf("Expected sweep to remove nothing, removed %d", removed)
	}

	// With a zero idle window everything is stale
	time.Sleep(10 * time.Millisecond)
	if removed := l.Sweep(0); removed != 2 {
		t.Errorf("Expected sweep to remove 2 buckets, removed %d", removed)
	}
	if len(l.perSource) != 0 {
		t.Errorf("Expected no buckets after sweep, got %d", len(l.perSource))
	}
}
