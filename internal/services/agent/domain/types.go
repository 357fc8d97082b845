// Package domain holds agent core types independent of the wire codec or transport
package domain

import (
	"strings"

	"trendscout/internal/core/trend"
)

// Schema identifies the envelope schema
type Schema struct {
	Version string
	URL     string
}

// Conversation identifies the conversation an envelope belongs to
type Conversation struct {
	ID string
}

// Sender is the speaker an envelope comes from
type Sender struct {
	SpeakerURI string
	ServiceURL string
}

// To addresses an event. A nil or empty To is a broadcast
type To struct {
	SpeakerURI string
	ServiceURL string
	Private    bool
}

// Empty reports whether the addressee names nobody
func (t *To) Empty() bool {
	return t == nil || (t.SpeakerURI == "" && t.ServiceURL == "")
}

// Envelope is one protocol message. Treat it as immutable once built
type Envelope struct {
	Schema       Schema
	Conversation Conversation
	Sender       Sender
	Events       []Event
}

// EventType is the wire name of an event kind
type EventType string

const (
	// EventUtterance is a natural language turn
	EventUtterance EventType = "utterance"

	// EventGetManifests asks agents to describe their capabilities
	EventGetManifests EventType = "getManifests"

	// EventPublishManifests answers EventGetManifests
	EventPublishManifests EventType = "publishManifests"
)

// Event is the closed set of event kinds: *Utterance, *GetManifests,
// *PublishManifests and *Unknown
type Event interface {
	Type() EventType
	Addressee() *To
	event()
}

// Token is one text token of a feature
type Token struct {
	Value string
}

// Feature is a tokenized modality of a dialog event, keyed by name ("text")
type Feature struct {
	MimeType string
	Tokens   []Token
}

// DialogEvent is the payload of an utterance
type DialogEvent struct {
	ID         string
	SpeakerURI string
	Features   map[string]Feature
}

// Text joins the tokens of the "text" feature. Empty when there are none
func (d DialogEvent) Text() string {
	f, ok := d.Features["text"]
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(f.Tokens))
	for _, t := range f.Tokens {
		parts = append(parts, t.Value)
	}
	return strings.Join(parts, " ")
}

// Utterance carries a dialog event. Err is set by the decoder when the dialog
// payload could not be read, the rest of the envelope is still usable
type Utterance struct {
	To          *To
	DialogEvent DialogEvent
	Err         error
}

// GetManifests is a capability discovery request
type GetManifests struct {
	To *To
}

// PublishManifests answers a discovery request
type PublishManifests struct {
	To                 *To
	ServicingManifests []Manifest
	DiscoveryManifests []Manifest
}

// Unknown is any event kind this agent does not handle. It is kept so ordering
// and addressing survive decoding
type Unknown struct {
	To        *To
	EventType EventType
}

func (e *Utterance) Type() EventType        { return EventUtterance }
func (e *GetManifests) Type() EventType     { return EventGetManifests }
func (e *PublishManifests) Type() EventType { return EventPublishManifests }
func (e *Unknown) Type() EventType          { return e.EventType }

func (e *Utterance) Addressee() *To        { return e.To }
func (e *GetManifests) Addressee() *To     { return e.To }
func (e *PublishManifests) Addressee() *To { return e.To }
func (e *Unknown) Addressee() *To          { return e.To }

func (*Utterance) event()        {}
func (*GetManifests) event()     {}
func (*PublishManifests) event() {}
func (*Unknown) event()          {}

// Repository is one search hit
type Repository = trend.Repository

// SearchResult is a search response, items in index order
type SearchResult = trend.Result
