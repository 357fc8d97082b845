package api

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trendscout/internal/adapters/openfloor"
	"trendscout/internal/platform/config"
	phttp "trendscout/internal/platform/net/http"
	"trendscout/internal/services/agent/domain"
	asvc "trendscout/internal/services/agent/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mounted(t *testing.T) stdhttp.Handler {
	t.Helper()
	t.Setenv("AGENT_SPEAKER_URI", "tag:scout")
	// unreachable on purpose, nothing here should hit GitHub
	t.Setenv("GITHUB_BASE_URL", "http://127.0.0.1:1")

	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, Options{Config: config.New()})
	return r.Mux()
}

func do(h stdhttp.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *stdhttp.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	h.ServeHTTP(rec, req)
	return rec
}

func TestMount_MetaUnderAPIV1(t *testing.T) {
	h := mounted(t)

	rec := do(h, stdhttp.MethodGet, "/api/v1/meta/health", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestMount_ManifestAtRoot(t *testing.T) {
	h := mounted(t)

	rec := do(h, stdhttp.MethodGet, "/openfloor/manifest", "")
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "tag:scout")
}

func TestMount_EnvelopeRoundTrip(t *testing.T) {
	h := mounted(t)

	in := domain.Envelope{
		Schema:       domain.Schema{Version: openfloor.SchemaVersion},
		Conversation: domain.Conversation{ID: "conv-api"},
		Sender:       domain.Sender{SpeakerURI: "tag:user"},
		Events: []domain.Event{
			openfloor.TextUtterance("u1", "tag:user", "best sourdough recipes", nil),
			&domain.GetManifests{To: &domain.To{SpeakerURI: "tag:scout"}},
		},
	}
	body, err := openfloor.Encode(in)
	require.NoError(t, err)

	rec := do(h, stdhttp.MethodPost, "/openfloor", string(body))
	require.Equal(t, stdhttp.StatusOK, rec.Code, rec.Body.String())

	res := openfloor.Decode(rec.Body.Bytes())
	require.True(t, res.Valid, res.Errors)
	assert.Equal(t, "conv-api", res.Envelope.Conversation.ID)
	assert.Equal(t, "tag:scout", res.Envelope.Sender.SpeakerURI)
	require.Len(t, res.Envelope.Events, 2)

	u, ok := res.Envelope.Events[0].(*domain.Utterance)
	require.True(t, ok)
	assert.Equal(t, asvc.MsgOutOfScope, u.DialogEvent.Text())
	_, ok = res.Envelope.Events[1].(*domain.PublishManifests)
	assert.True(t, ok)
}

func TestMount_InvalidEnvelopeUsesPlatformEnvelope(t *testing.T) {
	h := mounted(t)

	rec := do(h, stdhttp.MethodPost, "/openfloor", `{"openFloor":{}}`)
	require.Equal(t, stdhttp.StatusBadRequest, rec.Code)

	var env phttp.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Contains(t, env.Error, "invalid envelope")
	assert.NotEmpty(t, env.RequestID)
}
