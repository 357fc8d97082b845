package openfloor

import (
	"encoding/json"

	"trendscout/internal/services/agent/domain"
)

// Payload is the top level JSON document, {"openFloor": {...}}
type Payload struct {
	OpenFloor *Envelope `json:"openFloor" validate:"required"`
}

// Envelope is the wire form of domain.Envelope
type Envelope struct {
	Schema       Schema       `json:"schema"       validate:"required"`
	Conversation Conversation `json:"conversation" validate:"required"`
	Sender       Sender       `json:"sender"       validate:"required"`
	Events       []Event      `json:"events"       validate:"dive"`
}

// inboundEnvelope is what Decode validates. Events stay raw so one broken event
// cannot fail its siblings
type inboundEnvelope struct {
	Schema       Schema            `json:"schema"       validate:"required"`
	Conversation Conversation      `json:"conversation" validate:"required"`
	Sender       Sender            `json:"sender"       validate:"required"`
	Events       []json.RawMessage `json:"events"`
}

type inboundPayload struct {
	OpenFloor *inboundEnvelope `json:"openFloor" validate:"required"`
}

// Schema names the protocol version
type Schema struct {
	Version string `json:"version"       validate:"notblank"`
	URL     string `json:"url,omitempty"`
}

// Conversation carries the conversation id. Conversants and other fields are ignored
type Conversation struct {
	ID string `json:"id" validate:"notblank"`
}

// Sender identifies who sent the envelope
type Sender struct {
	SpeakerURI string `json:"speakerUri"           validate:"notblank"`
	ServiceURL string `json:"serviceUrl,omitempty"`
}

// To addresses one event
type To struct {
	SpeakerURI string `json:"speakerUri,omitempty"`
	ServiceURL string `json:"serviceUrl,omitempty"`
	Private    bool   `json:"private,omitempty"`
}

// Event is one wire event. Parameters stay raw until the kind is known
type Event struct {
	EventType  string          `json:"eventType"            validate:"notblank"`
	To         *To             `json:"to,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// utteranceParams is the parameters object of an utterance event
type utteranceParams struct {
	DialogEvent *dialogEvent `json:"dialogEvent"`
}

type dialogEvent struct {
	ID         string             `json:"id,omitempty"`
	SpeakerURI string             `json:"speakerUri"`
	Span       *span              `json:"span,omitempty"`
	Features   map[string]feature `json:"features"`
}

type span struct {
	StartTime string `json:"startTime,omitempty"`
}

type feature struct {
	MimeType string  `json:"mimeType"`
	Tokens   []token `json:"tokens"`
}

type token struct {
	Value string `json:"value"`
}

type manifestParams struct {
	ServicingManifests []domain.Manifest `json:"servicingManifests"`
	DiscoveryManifests []domain.Manifest `json:"discoveryManifests"`
}
