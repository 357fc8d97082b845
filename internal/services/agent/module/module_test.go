package module

import (
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	modkit "trendscout/internal/modkit"
	"trendscout/internal/platform/config"
	perr "trendscout/internal/platform/errors"
	phttp "trendscout/internal/platform/net/http"
	kit "trendscout/internal/platform/testkit"
	ahttp "trendscout/internal/services/agent/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromConfig_Defaults(t *testing.T) {
	o := FromConfig(config.New())
	assert.Equal(t, 2*time.Second, o.MinInterval)
	assert.Equal(t, 10*time.Second, o.SearchTimeout)
	assert.Equal(t, 5, o.MaxResults)
	assert.Equal(t, "trendscout-agent", o.UserAgent)
	assert.Empty(t, o.ManifestPath)
}

func TestFromConfig_Env(t *testing.T) {
	t.Setenv("AGENT_SPEAKER_URI", "tag:me")
	t.Setenv("AGENT_SEARCH_MIN_INTERVAL", "500ms")
	t.Setenv("AGENT_SEARCH_MAX_RESULTS", "8")
	t.Setenv("GITHUB_TOKENS", "a,b")
	t.Setenv("GITHUB_BASE_URL", "http://gh.local")

	o := FromConfig(config.New())
	assert.Equal(t, "tag:me", o.SpeakerURI)
	assert.Equal(t, 500*time.Millisecond, o.MinInterval)
	assert.Equal(t, 8, o.MaxResults)
	assert.Equal(t, "a,b", o.TokensCSV)
	assert.Equal(t, "http://gh.local", o.BaseURL)
}

func TestLoadManifest_Embedded(t *testing.T) {
	m, err := LoadManifest("", "", "")
	require.NoError(t, err)
	assert.Equal(t, "tag:trendscout.dev,2025:agent", m.Identification.SpeakerURI)
	assert.Equal(t, "Trend Scout", m.Identification.ConversationalName)
	require.Len(t, m.Capabilities, 1)
	assert.Contains(t, m.Capabilities[0].Keyphrases, "github trends")
	assert.Equal(t, []string{"en-us"}, m.Capabilities[0].Languages)
}

func TestLoadManifest_Overrides(t *testing.T) {
	m, err := LoadManifest("", "tag:other", "https://agent.example/openfloor")
	require.NoError(t, err)
	assert.Equal(t, "tag:other", m.Identification.SpeakerURI)
	assert.Equal(t, "https://agent.example/openfloor", m.Identification.ServiceURL)
}

const fileManifest = `identification:
  speakerUri: tag:file
capabilities:
  - keyphrases: [rust adoption]
    descriptions: [Reports on Rust repositories.]
`

func TestLoadManifest_File(t *testing.T) {
	p := filepath.Join(t.TempDir(), "m.yaml")
	require.NoError(t, os.WriteFile(p, []byte(fileManifest), 0o600))

	m, err := LoadManifest(p, "", "")
	require.NoError(t, err)
	assert.Equal(t, "tag:file", m.Identification.SpeakerURI)
	require.Len(t, m.Capabilities, 1)
	assert.Equal(t, []string{"rust adoption"}, m.Capabilities[0].Keyphrases)
}

func TestLoadManifest_Errors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.yaml"), "", "")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeNotFound), "%v", err)

	p := filepath.Join(t.TempDir(), "typo.yaml")
	require.NoError(t, os.WriteFile(p, []byte("identificaton:\n  speakerUri: x\n"), 0o600))
	_, err = LoadManifest(p, "", "")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation), "%v", err)

	p = filepath.Join(t.TempDir(), "anon.yaml")
	require.NoError(t, os.WriteFile(p, []byte("identification:\n  role: x\n"), 0o600))
	_, err = LoadManifest(p, "", "")
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation), "%v", err)
	assert.Contains(t, err.Error(), "identification.speakerUri must not be blank")
	assert.Contains(t, err.Error(), "capabilities must have at least 1 items")

	p = filepath.Join(t.TempDir(), "blank.yaml")
	blank := strings.Replace(fileManifest, "rust adoption", `" "`, 1)
	require.NoError(t, os.WriteFile(p, []byte(blank), 0o600))
	_, err = LoadManifest(p, "", "")
	assert.Contains(t, err.Error(), "capabilities[0].keyphrases[0] must not be blank")
}

func TestNew_MountsAndExposesPorts(t *testing.T) {
	t.Setenv("AGENT_SPEAKER_URI", "tag:mounted")

	m := New(modkit.Deps{Cfg: config.New()})
	assert.Equal(t, "agent", m.Name())

	p, ok := m.Ports().(Ports)
	require.True(t, ok)
	require.NotNil(t, p.Agent)
	require.NotNil(t, p.GitHub)
	assert.Equal(t, "tag:mounted", p.Agent.Manifest().Identification.SpeakerURI)

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/openfloor/manifest", nil))
	require.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tag:mounted")
}

func TestNew_BadManifestPanics(t *testing.T) {
	t.Setenv("AGENT_MANIFEST_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	kit.MustPanic(t, func() { _ = New(modkit.Deps{Cfg: config.New()}) })
}

func TestNew_OversizedEnvelopeRejected(t *testing.T) {
	t.Setenv("AGENT_SPEAKER_URI", "tag:mounted")
	r := phttp.AdaptChi(chi.NewRouter())
	New(modkit.Deps{Cfg: config.New()}).MountRoutes(r)

	big := `{"openFloor":{"pad":"` + strings.Repeat("x", ahttp.MaxBytes) + `"}}`
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/openfloor", strings.NewReader(big)))

	assert.Equal(t, stdhttp.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "exceeds")
}
