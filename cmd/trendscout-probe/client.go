package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"trendscout/internal/adapters/openfloor"
	perr "trendscout/internal/platform/errors"
	"trendscout/internal/services/agent/domain"

	"github.com/google/uuid"
)

// client posts envelopes to one agent endpoint
type client struct {
	url     string
	speaker string
	agent   string
	http    *http.Client
}

func newClient(url, speaker, agent string, timeout time.Duration) *client {
	return &client{
		url:     url,
		speaker: speaker,
		agent:   agent,
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope starts a fresh conversation carrying events
func (c *client) envelope(events ...domain.Event) domain.Envelope {
	return domain.Envelope{
		Schema:       domain.Schema{Version: openfloor.SchemaVersion},
		Conversation: domain.Conversation{ID: uuid.NewString()},
		Sender:       domain.Sender{SpeakerURI: c.speaker},
		Events:       events,
	}
}

func (c *client) to() *domain.To {
	if c.agent == "" {
		return nil
	}
	return &domain.To{SpeakerURI: c.agent}
}

// send posts env and returns the raw reply body and the decoded reply
func (c *client) send(ctx context.Context, env domain.Envelope) ([]byte, domain.Envelope, error) {
	body, err := openfloor.Encode(env)
	if err != nil {
		return nil, domain.Envelope{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, domain.Envelope{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.Envelope{}, perr.FromTransport(err, "post envelope")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, domain.Envelope{}, perr.FromTransport(err, "read reply")
	}
	if resp.StatusCode != http.StatusOK {
		return raw, domain.Envelope{}, perr.Newf(perr.ErrorCodeUnavailable, "agent answered %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}

	res := openfloor.Decode(raw)
	if !res.Valid {
		return raw, domain.Envelope{}, fmt.Errorf("reply: %w", res.Err())
	}
	return raw, res.Envelope, nil
}
