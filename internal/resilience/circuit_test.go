package resilience

import (
	"errors"
	"testing"
	"time"
)

func testBreaker(threshold int, reset time.Duration) (*Breaker, *time.Time) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker("test", threshold, reset)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := testBreaker(3, time.Minute)
	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("attempt %d rejected: %v", i, err)
		}
		b.Record(errors.New("fail"))
	}
	if b.State() != CircuitOpen {
		t.Fatalf("expected open, got %s", b.State())
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b, _ := testBreaker(3, time.Minute)
	b.Record(errors.New("fail"))
	b.Record(errors.New("fail"))
	if b.Failures() != 2 {
		t.Fatalf("expected 2 failures, got %d", b.Failures())
	}
	b.Record(nil)
	if b.Failures() != 0 || b.State() != CircuitClosed {
		t.Errorf("expected reset to closed, got %d failures in %s", b.Failures(), b.State())
	}
}

func TestBreaker_HalfOpenSingleProbe(t *testing.T) {
	b, now := testBreaker(1, time.Minute)
	b.Record(errors.New("fail"))
	if b.State() != CircuitOpen {
		t.Fatalf("expected open, got %s", b.State())
	}

	*now = now.Add(2 * time.Minute)
	if b.State() != CircuitHalfOpen {
		t.Fatalf("expected half-open after reset timeout, got %s", b.State())
	}
	if err := b.Allow(); err != nil {
		t.Fatalf("trial request rejected: %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("second concurrent trial request should be rejected, got %v", err)
	}

	b.Record(nil)
	if b.State() != CircuitClosed {
		t.Errorf("expected closed after successful trial request, got %s", b.State())
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, now := testBreaker(1, time.Minute)
	b.Record(errors.New("fail"))
	*now = now.Add(2 * time.Minute)

	if err := b.Allow(); err != nil {
		t.Fatalf("trial request rejected: %v", err)
	}
	b.Record(errors.New("still failing"))
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected reopened circuit, got %v", err)
	}
}

func TestBreaker_ReleaseFreesProbe(t *testing.T) {
	b, now := testBreaker(1, time.Minute)
	b.Record(errors.New("fail"))
	*now = now.Add(2 * time.Minute)

	if err := b.Allow(); err != nil {
		t.Fatalf("trial request rejected: %v", err)
	}
	b.Release()
	if err := b.Allow(); err != nil {
		t.Errorf("expected a new trial request after release, got %v", err)
	}
}

func TestCircuitStateString(t *testing.T) {
	cases := map[CircuitState]string{
		CircuitClosed:    "closed",
		CircuitOpen:      "open",
		CircuitHalfOpen:  "half-open",
		CircuitState(42): "unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
