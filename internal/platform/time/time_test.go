package time

import (
	"testing"
	"time"
)

func TestSystemClock(t *testing.T) {
	c := System()
	before := time.Now()
	if c.Now().Before(before) {
		t.Fatalf("system clock went backwards")
	}
	select {
	case <-c.After(time.Millisecond):
	case <-time.After(time.Second):
		t.Fatalf("system After never fired")
	}
}

func TestManual_AdvanceFiresDueWaiters(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)

	short := m.After(time.Second)
	long := m.After(3 * time.Second)
	if m.Waiters() != 2 {
		t.Fatalf("Waiters = %d, want 2", m.Waiters())
	}

	m.Advance(999 * time.Millisecond)
	select {
	case <-short:
		t.Fatalf("short fired early")
	default:
	}

	m.Advance(time.Millisecond)
	select {
	case got := <-short:
		if !got.Equal(start.Add(time.Second)) {
			t.Fatalf("short fired at %v", got)
		}
	default:
		t.Fatalf("short should have fired")
	}
	if m.Waiters() != 1 {
		t.Fatalf("Waiters = %d, want 1", m.Waiters())
	}

	m.Set(start.Add(10 * time.Second))
	select {
	case <-long:
	default:
		t.Fatalf("long should have fired after Set")
	}
}

func TestManual_NonPositiveAfterFiresImmediately(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	select {
	case <-m.After(0):
	default:
		t.Fatalf("After(0) should be ready")
	}
	if m.Waiters() != 0 {
		t.Fatalf("After(0) should not register a waiter")
	}
}

func TestManual_SetIgnoresPast(t *testing.T) {
	start := time.Unix(100, 0)
	m := NewManual(start)
	m.Set(time.Unix(50, 0))
	if !m.Now().Equal(start) {
		t.Fatalf("Set moved clock backwards to %v", m.Now())
	}
}

func TestManual_BlockUntil(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	done := make(chan struct{})
	go func() {
		<-m.After(time.Second)
		close(done)
	}()
	m.BlockUntil(1)
	m.Advance(time.Second)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("waiter goroutine never released")
	}
}
