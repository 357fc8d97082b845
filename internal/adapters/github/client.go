// Package github is a small GitHub REST v3 client for repository search
package github

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"trendscout/internal/core/ratelimit"
	perr "trendscout/internal/platform/errors"
	"trendscout/internal/platform/logger"
)

const (
	baseURLDefault       = "https://api.github.com"
	defaultTimeout       = 10 * time.Second
	defaultSearchTimeout = 10 * time.Second
	defaultUA            = "trendscout-agent"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string

	// Timeout bounds a whole HTTP exchange at the transport
	Timeout time.Duration

	// SearchTimeout is the deadline of one search call, not counting the rate wait
	SearchTimeout time.Duration

	// Comma separated tokens passed in from CLI or config
	// Empty means tokenless which is very low quota so not recommended
	TokensCSV string

	// Limiter gates every search. Nil means a limiter at ratelimit.DefaultMinInterval
	Limiter ratelimit.Waiter

	// HTTPClient replaces the default client, mostly for tests
	HTTPClient *http.Client
}

// Client is a minimal GitHub REST client with token rotation. There are no retries,
// a failed call is reported once
type Client struct {
	http    *http.Client
	opts    Options
	tokens  []string
	cur     atomic.Int32
	limiter ratelimit.Waiter
	log     logger.Logger
	now     func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.SearchTimeout <= 0 {
		o.SearchTimeout = defaultSearchTimeout
	}
	var toks []string
	if s := strings.TrimSpace(o.TokensCSV); s != "" {
		for t := range strings.SplitSeq(s, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				toks = append(toks, t)
			}
		}
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: o.Timeout}
	}
	lim := o.Limiter
	if lim == nil {
		lim = ratelimit.New(ratelimit.DefaultMinInterval)
	}
	return &Client{
		http:    hc,
		opts:    o,
		tokens:  toks,
		limiter: lim,
		log:     *logger.Named("github"),
		now:     time.Now,
	}
}

// nextToken rotates through the configured tokens, "" when there are none
func (c *Client) nextToken() string {
	if len(c.tokens) == 0 {
		return ""
	}
	return c.tokens[int(c.cur.Add(1))%len(c.tokens)]
}

// Do sends one authenticated request. A non 2xx answer becomes a *StatusError
// wrapped as TooManyRequests (429 and 403) or Unavailable; transport failures go
// through perr.FromTransport
func (c *Client) Do(ctx context.Context, method, pathAndQuery string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+pathAndQuery, nil)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "github build request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if tok := c.nextToken(); tok != "" {
		req.Header.Set("Authorization", "token "+tok)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	elapsed := c.now().Sub(start)
	if err != nil {
		c.log.Warn().Err(err).Str("path", req.URL.Path).Dur("latency", elapsed).Msg("github transport error")
		return nil, perr.FromTransport(err, "github request failed")
	}

	rl := rateFrom(resp.Header)
	c.log.Debug().
		Str("method", method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("latency", elapsed).
		Int("rate_remaining", rl.Remaining).
		Time("rate_reset", rl.Reset).
		Dur("retry_after", rl.RetryAfter).
		Msg("github response")

	if resp.StatusCode/100 == 2 {
		return resp, nil
	}

	tail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	_ = resp.Body.Close()
	se := &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(tail))}
	if IsRateLimited(se) {
		return nil, perr.Wrapf(se, perr.ErrorCodeTooManyRequests, "github rate limited%s", rl.hint(c.now()))
	}
	return nil, perr.Wrapf(se, perr.ErrorCodeUnavailable, "github unexpected status %d", resp.StatusCode)
}

// Ping checks that the API answers. /rate_limit does not count against the quota
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Do(ctx, http.MethodGet, "/rate_limit")
	if err != nil {
		return err
	}
	return drainAndClose(resp.Body)
}
