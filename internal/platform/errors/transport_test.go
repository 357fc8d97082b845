package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"
)

type fakeNetErr struct{ timeout bool }

func (e fakeNetErr) Error() string   { return "net boom" }
func (e fakeNetErr) Timeout() bool   { return e.timeout }
func (e fakeNetErr) Temporary() bool { return false }

func TestIsTimeout(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", stderrs.New("x"), false},
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), true},
		{"net timeout", fakeNetErr{timeout: true}, true},
		{"net other", fakeNetErr{timeout: false}, false},
		{"coded", Timeoutf("slow"), true},
		{"canceled", context.Canceled, false},
	}
	for _, c := range cases {
		if got := IsTimeout(c.err); got != c.want {
			t.Fatalf("%s: IsTimeout = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestFromTransport(t *testing.T) {
	if FromTransport(nil, "x") != nil {
		t.Fatalf("nil in should be nil out")
	}
	if got := CodeOf(FromTransport(context.DeadlineExceeded, "search")); got != ErrorCodeTimeout {
		t.Fatalf("deadline code = %v, want timeout", got)
	}
	if got := CodeOf(FromTransport(fakeNetErr{timeout: true}, "search")); got != ErrorCodeTimeout {
		t.Fatalf("net timeout code = %v, want timeout", got)
	}
	if got := CodeOf(FromTransport(context.Canceled, "search")); got != ErrorCodeUnknown {
		t.Fatalf("canceled code = %v, want unknown", got)
	}
	err := FromTransport(stderrs.New("connection refused"), "search")
	if got := CodeOf(err); got != ErrorCodeUnavailable {
		t.Fatalf("refused code = %v, want unavailable", got)
	}
	if want := "search: connection refused"; err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
