package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "trendscout/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocListsRoutes(t *testing.T) {
	b, err := Doc()
	require.NoError(t, err)

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Info    map[string]string         `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(b, &doc))

	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Trendscout API", doc.Info["title"])
	assert.Equal(t, "dev", doc.Info["version"])
	assert.Contains(t, doc.Paths["/openfloor"], "post")
	for _, p := range []string{"/openfloor/manifest", "/api/v1/meta/health", "/api/v1/meta/ready", "/api/v1/meta/version"} {
		assert.Contains(t, doc.Paths[p], "get", p)
	}
}

func TestMount(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, true)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/openfloor/manifest"`)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/api/docs/", rec.Header().Get("Location"))
}

func TestMountDisabled(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	Mount(r, false)

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
