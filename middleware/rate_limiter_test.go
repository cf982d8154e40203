package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.allow("client") {
			t.Fatalf("request %d within limit was rejected", i+1)
		}
	}
	if rl.allow("client") {
		t.Fatalf("request over the limit was allowed")
	}
}

func TestRateLimiterIsolatesClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.allow("a") {
		t.Fatalf("first request for a rejected")
	}
	if !rl.allow("b") {
		t.Fatalf("b must not share a's window")
	}
	if rl.allow("a") {
		t.Fatalf("a's second request must be rejected")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.allow("client") {
		t.Fatalf("first request rejected")
	}
	if rl.allow("client") {
		t.Fatalf("second request within window allowed")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.allow("client") {
		t.Fatalf("request after window expiry rejected")
	}
}
