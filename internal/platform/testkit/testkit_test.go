package testkit

import "testing"

var now = func() string { return "real" }

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("boom") })
}

func TestMustContain(t *testing.T) {
	MustContain(t, `{"eventType":"utterance"}`, `"utterance"`)
}

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &now, func() string { return "fake" })
		if got := now(); got != "fake" {
			t.Fatalf("now() = %q inside swap", got)
		}
	})
	if got := now(); got != "real" {
		t.Fatalf("now() = %q after swap, want real", got)
	}
}
