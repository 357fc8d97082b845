// Package service contains the agent workflow: route inbound events, answer
// technology questions with a GitHub trend report and publish the manifest
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trendscout/internal/adapters/openfloor"
	"trendscout/internal/core/normalize"
	"trendscout/internal/core/scope"
	"trendscout/internal/core/trend"
	perr "trendscout/internal/platform/errors"
	"trendscout/internal/platform/logger"
	"trendscout/internal/services/agent/domain"

	"github.com/google/uuid"
)

// Reply texts for utterances that do not produce a report
const (
	MsgNeedTechnology = "Please tell me which technology you would like me to research, " +
		"for example \"trending Rust web frameworks\"."
	MsgOutOfScope = "I research technology trends on GitHub. Ask me about a framework, library " +
		"or programming language and I will summarize its adoption and activity."
	MsgTimeout = "GitHub took too long to answer, so I could not gather fresh trend data. " +
		"Please try again in a moment."
	MsgApology = "Sorry, something went wrong while researching that. Please try again later."
)

// Service is the public service port
type Service interface {
	domain.Agent
	Manifest() domain.Manifest
}

// Options control service behavior
type Options struct {
	// Manifest is required, its identification is the agent's identity
	Manifest domain.Manifest

	// MaxResults is the search page size, 0 means the client default
	MaxResults int

	// Now anchors activity windows, defaults to time.Now
	Now func() time.Time

	// NewID mints reply event ids, defaults to random UUIDs
	NewID func() string
}

// Svc implements domain.Agent
type Svc struct {
	searcher   domain.Searcher
	classifier domain.Classifier
	manifest   domain.Manifest
	maxResults int
	now        func() time.Time
	newID      func() string
}

var _ Service = (*Svc)(nil)

// New constructs the service
func New(searcher domain.Searcher, classifier domain.Classifier, opt Options) *Svc {
	if searcher == nil {
		panic("agent.Service requires a non nil Searcher")
	}
	if classifier == nil {
		panic("agent.Service requires a non nil Classifier")
	}
	if opt.Manifest.Identification.SpeakerURI == "" {
		panic("agent.Service requires a manifest with a speakerUri")
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.NewID == nil {
		opt.NewID = uuid.NewString
	}
	return &Svc{
		searcher:   searcher,
		classifier: classifier,
		manifest:   opt.Manifest,
		maxResults: opt.MaxResults,
		now:        opt.Now,
		newID:      opt.NewID,
	}
}

// Manifest returns the capability manifest this agent publishes
func (s *Svc) Manifest() domain.Manifest { return s.manifest }

func (s *Svc) sender() domain.Sender {
	id := s.manifest.Identification
	return domain.Sender{SpeakerURI: id.SpeakerURI, ServiceURL: id.ServiceURL}
}

// ProcessEnvelope answers every event addressed to this agent, in order. It never
// fails: problems with one event become a reply to that event
func (s *Svc) ProcessEnvelope(ctx context.Context, in domain.Envelope) domain.Envelope {
	out := domain.Envelope{
		Schema:       in.Schema,
		Conversation: in.Conversation,
		Sender:       s.sender(),
		Events:       []domain.Event{},
	}
	log := logger.C(ctx)
	replyTo := &domain.To{SpeakerURI: in.Sender.SpeakerURI}

	for i, ev := range in.Events {
		if !s.addressedToMe(ev.Addressee()) {
			log.Debug().Int("event", i).Str("event_type", string(ev.Type())).Msg("event not addressed to agent")
			continue
		}
		switch e := ev.(type) {
		case *domain.Utterance:
			text := s.respond(ctx, i, e)
			out.Events = append(out.Events, openfloor.TextUtterance(s.newID(), s.manifest.Identification.SpeakerURI, text, replyTo))
		case *domain.GetManifests:
			log.Debug().Int("event", i).Msg("publishing manifest")
			out.Events = append(out.Events, &domain.PublishManifests{
				To:                 replyTo,
				ServicingManifests: []domain.Manifest{s.manifest},
				DiscoveryManifests: []domain.Manifest{},
			})
		case *domain.PublishManifests, *domain.Unknown:
			log.Debug().Int("event", i).Str("event_type", string(ev.Type())).Msg("event ignored")
		}
	}
	return out
}

// addressedToMe is true for broadcasts and for events naming this agent's
// speaker uri or service url
func (s *Svc) addressedToMe(to *domain.To) bool {
	if to.Empty() {
		return true
	}
	id := s.manifest.Identification
	if to.SpeakerURI != "" && to.SpeakerURI == id.SpeakerURI {
		return true
	}
	return to.ServiceURL != "" && to.ServiceURL == id.ServiceURL
}

// respond turns one utterance into reply text. Failures are logged and mapped to
// a user facing message
func (s *Svc) respond(ctx context.Context, i int, u *domain.Utterance) string {
	log := logger.C(ctx).With().Int("event", i).Logger()

	text, err := s.answer(ctx, u)
	if err == nil {
		return text
	}
	msg := MessageFor(err)
	switch {
	case errors.Is(err, domain.ErrMalformedQuery), errors.Is(err, domain.ErrOutOfScope):
		log.Debug().Err(err).Msg("utterance not researched")
	case perr.IsCode(err, perr.ErrorCodePanic):
		log.Error().Err(err).Msg("utterance handler panicked")
	default:
		log.Warn().Err(err).Uint16("code", uint16(perr.CodeOf(err))).Msg("utterance research failed")
	}
	return msg
}

func (s *Svc) answer(ctx context.Context, u *domain.Utterance) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = perr.PanicErrf("utterance handler panic: %v", r)
		}
	}()

	if u.Err != nil {
		return "", u.Err
	}
	raw := u.DialogEvent.Text()
	if normalize.Text(raw) == "" {
		return "", domain.ErrMalformedQuery
	}
	// keywords match the raw token text, only the search term is cleaned
	if !s.classifier.InScope(raw) {
		return "", domain.ErrOutOfScope
	}
	term := scope.ExtractTerm(raw)
	if term == "" {
		return "", domain.ErrMalformedQuery
	}

	res, err := s.searcher.SearchRepositories(ctx, term, s.maxResults)
	if err != nil {
		return "", fmt.Errorf("search %q: %w", term, err)
	}
	return trend.Render(trend.Analyze(res, term, s.now())), nil
}

// MessageFor maps an utterance failure to the reply text
func MessageFor(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrMalformedQuery):
		return MsgNeedTechnology
	case errors.Is(err, domain.ErrOutOfScope):
		return MsgOutOfScope
	case timedOut(err):
		return MsgTimeout
	default:
		return MsgApology
	}
}

// timedOut trusts the code of a classified error and only falls back to
// deadline and net.Error checks for foreign ones
func timedOut(err error) bool {
	if e, ok := perr.As(err); ok {
		return e.Code() == perr.ErrorCodeTimeout
	}
	return perr.IsTimeout(err)
}
