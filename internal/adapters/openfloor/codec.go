// Package openfloor is the JSON codec for Open Floor envelopes. It understands the
// event kinds this agent consumes and keeps the rest as opaque events
package openfloor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	perr "trendscout/internal/platform/errors"
	"trendscout/internal/platform/net/http/bind"
	"trendscout/internal/services/agent/domain"
)

// SchemaVersion is the protocol version this codec speaks
const SchemaVersion = "1.0.0"

// TextMimeType is the mime type of the text feature
const TextMimeType = "text/plain"

// Result is the outcome of Decode. Envelope is set only when Valid
type Result struct {
	Valid    bool
	Errors   []string
	Envelope *domain.Envelope
}

// Err folds a failed Result into a single validation error
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return perr.Newf(perr.ErrorCodeValidation, "invalid envelope: %s", strings.Join(r.Errors, "; "))
}

// Decode parses and validates a raw payload. Unknown fields are tolerated.
// A broken utterance payload does not fail the envelope, it is carried on the event.
// An event without a type or with mistyped fields decodes as domain.Unknown
func Decode(data []byte) Result {
	var p inboundPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return Result{Errors: []string{"invalid JSON: " + err.Error()}}
	}
	if msgs := bind.Struct(p); len(msgs) > 0 {
		return Result{Errors: msgs}
	}

	w := p.OpenFloor
	env := domain.Envelope{
		Schema:       domain.Schema{Version: w.Schema.Version, URL: w.Schema.URL},
		Conversation: domain.Conversation{ID: w.Conversation.ID},
		Sender:       domain.Sender{SpeakerURI: w.Sender.SpeakerURI, ServiceURL: w.Sender.ServiceURL},
		Events:       make([]domain.Event, 0, len(w.Events)),
	}
	for i, raw := range w.Events {
		var ev Event
		if err := json.Unmarshal(raw, &ev); err != nil || len(bind.Struct(ev)) > 0 {
			env.Events = append(env.Events, &domain.Unknown{EventType: domain.EventType(strings.TrimSpace(ev.EventType))})
			continue
		}
		env.Events = append(env.Events, decodeEvent(i, ev))
	}
	return Result{Valid: true, Envelope: &env}
}

func decodeEvent(i int, ev Event) domain.Event {
	to := toDomainTo(ev.To)
	switch domain.EventType(ev.EventType) {
	case domain.EventUtterance:
		de, err := decodeDialog(ev.Parameters)
		if err != nil {
			err = perr.Wrapf(err, perr.ErrorCodeValidation, "events[%d] utterance", i)
		}
		return &domain.Utterance{To: to, DialogEvent: de, Err: err}
	case domain.EventGetManifests:
		return &domain.GetManifests{To: to}
	case domain.EventPublishManifests:
		var mp manifestParams
		if len(ev.Parameters) > 0 {
			if err := json.Unmarshal(ev.Parameters, &mp); err != nil {
				return &domain.Unknown{To: to, EventType: domain.EventPublishManifests}
			}
		}
		return &domain.PublishManifests{
			To:                 to,
			ServicingManifests: mp.ServicingManifests,
			DiscoveryManifests: mp.DiscoveryManifests,
		}
	default:
		return &domain.Unknown{To: to, EventType: domain.EventType(ev.EventType)}
	}
}

func decodeDialog(raw json.RawMessage) (domain.DialogEvent, error) {
	if len(raw) == 0 {
		return domain.DialogEvent{}, fmt.Errorf("missing parameters")
	}
	var up utteranceParams
	if err := json.Unmarshal(raw, &up); err != nil {
		return domain.DialogEvent{}, err
	}
	if up.DialogEvent == nil {
		return domain.DialogEvent{}, fmt.Errorf("missing dialogEvent")
	}
	d := up.DialogEvent
	out := domain.DialogEvent{
		ID:         d.ID,
		SpeakerURI: d.SpeakerURI,
		Features:   make(map[string]domain.Feature, len(d.Features)),
	}
	for name, f := range d.Features {
		toks := make([]domain.Token, 0, len(f.Tokens))
		for _, t := range f.Tokens {
			toks = append(toks, domain.Token{Value: t.Value})
		}
		out.Features[name] = domain.Feature{MimeType: f.MimeType, Tokens: toks}
	}
	return out, nil
}

func toDomainTo(t *To) *domain.To {
	if t == nil {
		return nil
	}
	return &domain.To{SpeakerURI: t.SpeakerURI, ServiceURL: t.ServiceURL, Private: t.Private}
}

func toWireTo(t *domain.To) *To {
	if t.Empty() {
		return nil
	}
	return &To{SpeakerURI: t.SpeakerURI, ServiceURL: t.ServiceURL, Private: t.Private}
}

// Encode serializes env as {"openFloor": {...}}. Inbound only kinds that carry no
// parameters are written with their event type alone
func Encode(env domain.Envelope) ([]byte, error) {
	w := Envelope{
		Schema:       Schema{Version: env.Schema.Version, URL: env.Schema.URL},
		Conversation: Conversation{ID: env.Conversation.ID},
		Sender:       Sender{SpeakerURI: env.Sender.SpeakerURI, ServiceURL: env.Sender.ServiceURL},
		Events:       make([]Event, 0, len(env.Events)),
	}
	for i, e := range env.Events {
		we, err := encodeEvent(e)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "encode events[%d]", i)
		}
		w.Events = append(w.Events, we)
	}
	b, err := json.Marshal(Payload{OpenFloor: &w})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode envelope")
	}
	return b, nil
}

func encodeEvent(e domain.Event) (Event, error) {
	out := Event{EventType: string(e.Type()), To: toWireTo(e.Addressee())}
	var params any
	switch ev := e.(type) {
	case *domain.Utterance:
		params = utteranceParams{DialogEvent: encodeDialog(ev.DialogEvent)}
	case *domain.PublishManifests:
		mp := manifestParams{
			ServicingManifests: ev.ServicingManifests,
			DiscoveryManifests: ev.DiscoveryManifests,
		}
		if mp.ServicingManifests == nil {
			mp.ServicingManifests = []domain.Manifest{}
		}
		if mp.DiscoveryManifests == nil {
			mp.DiscoveryManifests = []domain.Manifest{}
		}
		params = mp
	case *domain.GetManifests, *domain.Unknown:
		return out, nil
	default:
		return Event{}, fmt.Errorf("unsupported event %T", e)
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return Event{}, err
	}
	out.Parameters = raw
	return out, nil
}

func encodeDialog(d domain.DialogEvent) *dialogEvent {
	out := &dialogEvent{
		ID:         d.ID,
		SpeakerURI: d.SpeakerURI,
		Span:       &span{StartTime: now().UTC().Format(time.RFC3339Nano)},
		Features:   make(map[string]feature, len(d.Features)),
	}
	for name, f := range d.Features {
		toks := make([]token, 0, len(f.Tokens))
		for _, t := range f.Tokens {
			toks = append(toks, token{Value: t.Value})
		}
		out.Features[name] = feature{MimeType: f.MimeType, Tokens: toks}
	}
	return out
}

// now is swapped in tests
var now = time.Now

// TextUtterance builds an utterance whose text feature holds one token
func TextUtterance(id, speakerURI, text string, to *domain.To) *domain.Utterance {
	return &domain.Utterance{
		To: to,
		DialogEvent: domain.DialogEvent{
			ID:         id,
			SpeakerURI: speakerURI,
			Features: map[string]domain.Feature{
				"text": {MimeType: TextMimeType, Tokens: []domain.Token{{Value: text}}},
			},
		},
	}
}
