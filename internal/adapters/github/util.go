package github

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// StatusError is a non 2xx answer from GitHub
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("github status %d", e.Status)
	}
	return fmt.Sprintf("github status %d: %s", e.Status, e.Body)
}

// rateLimit is what GitHub reports about quota on every response
type rateLimit struct {
	Remaining  int
	Reset      time.Time
	RetryAfter time.Duration
}

func rateFrom(h http.Header) rateLimit {
	var rl rateLimit
	rl.Remaining, _ = strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	if sec, _ := strconv.ParseInt(h.Get("X-RateLimit-Reset"), 10, 64); sec > 0 {
		rl.Reset = time.Unix(sec, 0).UTC()
	}
	if sec, _ := strconv.Atoi(h.Get("Retry-After")); sec > 0 {
		rl.RetryAfter = time.Duration(sec) * time.Second
	}
	return rl
}

// hint tells the caller when a retry can work, preferring Retry-After over the reset time
func (rl rateLimit) hint(now time.Time) string {
	switch {
	case rl.RetryAfter > 0:
		return fmt.Sprintf(", retry in %s", rl.RetryAfter)
	case !rl.Reset.IsZero() && rl.Reset.After(now):
		return fmt.Sprintf(", quota resets in %s", rl.Reset.Sub(now).Round(time.Second))
	}
	return ""
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}

// StatusOf returns the HTTP status carried by err, 0 when there is none
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// IsRateLimited reports a 429, or a 403 which GitHub uses for secondary limits
func IsRateLimited(err error) bool {
	s := StatusOf(err)
	return s == http.StatusTooManyRequests || s == http.StatusForbidden
}
