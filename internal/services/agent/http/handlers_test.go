package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trendscout/internal/adapters/openfloor"
	"trendscout/internal/modkit/httpkit"
	perr "trendscout/internal/platform/errors"
	pnet "trendscout/internal/platform/net"
	phttp "trendscout/internal/platform/net/http"
	"trendscout/internal/platform/net/middleware"
	"trendscout/internal/services/agent/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSvc struct {
	calls   int
	last    domain.Envelope
	lastCtx context.Context
	panic   bool
}

func (f *fakeSvc) ProcessEnvelope(ctx context.Context, in domain.Envelope) domain.Envelope {
	f.calls++
	f.last = in
	f.lastCtx = ctx
	if f.panic {
		panic("router exploded")
	}
	return domain.Envelope{
		Schema:       in.Schema,
		Conversation: in.Conversation,
		Sender:       domain.Sender{SpeakerURI: "tag:agent"},
		Events:       []domain.Event{openfloor.TextUtterance("r1", "tag:agent", "hi", &domain.To{SpeakerURI: in.Sender.SpeakerURI})},
	}
}

func (f *fakeSvc) Manifest() domain.Manifest {
	return domain.Manifest{Identification: domain.Identification{SpeakerURI: "tag:agent", ServiceURL: "https://agent.example"}}
}

func newRouter(s *fakeSvc) stdhttp.Handler {
	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	r.Use(middleware.RequestID(), middleware.RecoverJSON)
	r.Route("/openfloor", func(sub httpkit.Router) { Register(sub, s) })
	return r.Mux()
}

const goodEnvelope = `{"openFloor":{"schema":{"version":"1.0.0"},"conversation":{"id":"conv-7"},
"sender":{"speakerUri":"tag:user"},"events":[{"eventType":"utterance","parameters":{"dialogEvent":
{"speakerUri":"tag:user","features":{"text":{"mimeType":"text/plain","tokens":[{"value":"go tools"}]}}}}}]}}`

func TestEnvelope_OK(t *testing.T) {
	s := &fakeSvc{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPost, "/openfloor", strings.NewReader(goodEnvelope))
	newRouter(s).ServeHTTP(rec, req)

	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, "conv-7", s.last.Conversation.ID)

	res := openfloor.Decode(rec.Body.Bytes())
	require.True(t, res.Valid, res.Errors)
	assert.Equal(t, "conv-7", res.Envelope.Conversation.ID)
	require.Len(t, res.Envelope.Events, 1)
	assert.Equal(t, "hi", res.Envelope.Events[0].(*domain.Utterance).DialogEvent.Text())

	// raw protocol payload, not the platform envelope
	var raw map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Contains(t, raw, "openFloor")
	assert.NotContains(t, raw, "status_code")
}

func TestEnvelope_CarriesConversationOnContext(t *testing.T) {
	s := &fakeSvc{}
	rec := httptest.NewRecorder()
	newRouter(s).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/openfloor", strings.NewReader(goodEnvelope)))

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	require.NotNil(t, s.lastCtx)
	assert.Equal(t, "conv-7", pnet.ConversationID(s.lastCtx))
}

func TestEnvelope_Invalid(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
		code perr.ErrorCode
	}{
		{"not json", `{"openFloor":`, "invalid JSON", perr.ErrorCodeValidation},
		{"missing conversation id", `{"openFloor":{"schema":{"version":"1.0.0"},"conversation":{},"sender":{"speakerUri":"u"}}}`, "openFloor.conversation", perr.ErrorCodeValidation},
		{"empty body", ``, "empty body", perr.ErrorCodeJSON},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &fakeSvc{}
			rec := httptest.NewRecorder()
			newRouter(s).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/openfloor", strings.NewReader(tc.body)))

			require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
			assert.Zero(t, s.calls)

			var env phttp.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.Equal(t, stdhttp.StatusBadRequest, env.StatusCode)
			assert.Equal(t, tc.code, env.Code)
			assert.Contains(t, env.Error, tc.want)
			assert.NotEmpty(t, env.RequestID)
		})
	}
}

func TestEnvelope_TooLarge(t *testing.T) {
	s := &fakeSvc{}
	big := `{"openFloor":{"pad":"` + strings.Repeat("x", MaxBytes) + `"}}`
	rec := httptest.NewRecorder()
	newRouter(s).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/openfloor", strings.NewReader(big)))

	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Zero(t, s.calls)
	assert.Contains(t, rec.Body.String(), "exceeds")
}

func TestEnvelope_PanicBecomes500(t *testing.T) {
	s := &fakeSvc{panic: true}
	rec := httptest.NewRecorder()
	newRouter(s).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/openfloor", strings.NewReader(goodEnvelope)))

	assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "panic recovered")
}

func TestManifest(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeSvc{}).ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/openfloor/manifest", nil))

	require.Equal(t, stdhttp.StatusOK, rec.Code)
	var env struct {
		Data domain.Manifest `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "tag:agent", env.Data.Identification.SpeakerURI)
}
