package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "trendscout/internal/platform/errors"
	pnet "trendscout/internal/platform/net"
	phttp "trendscout/internal/platform/net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "rid-1", ""))
	rec := httptest.NewRecorder()
	h(rec, req)

	var env phttp.Envelope
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestJSON_WritesStatusAndContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"k":"v"}`, rec.Body.String())
}

func TestHandle_OKWrapsInEnvelope(t *testing.T) {
	rec, env := serve(t, phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.OK(map[string]string{"ok": "yes"})
	}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "OK", env.Status)
	assert.Equal(t, "rid-1", env.RequestID)
	assert.Equal(t, map[string]any{"ok": "yes"}, env.Data)
}

func TestHandle_ZeroStatusDefaultsTo200AndHeadersCopied(t *testing.T) {
	rec, _ := serve(t, phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Body: "x", Header: http.Header{"X-Trace": {"a", "b"}}}
	}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"a", "b"}, rec.Header().Values("X-Trace"))
}

func TestHandle_ErrorMapsCodeAndStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   perr.ErrorCode
	}{
		{"validation", perr.Validationf("bad envelope"), http.StatusBadRequest, perr.ErrorCodeValidation},
		{"rate limited", perr.New(perr.ErrorCodeTooManyRequests, "slow down"), http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests},
		{"timeout", perr.Timeoutf("github timed out"), http.StatusGatewayTimeout, perr.ErrorCodeTimeout},
		{"plain", errors.New("boom"), http.StatusInternalServerError, perr.ErrorCodeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := serve(t, phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(tc.err) }))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.status, env.StatusCode)
			assert.Equal(t, tc.code, env.Code)
			assert.NotEmpty(t, env.Error)
			assert.Equal(t, "rid-1", env.RequestID)
			assert.Nil(t, env.Data)
		})
	}
}

func TestHandle_RawJSONBypassesEnvelope(t *testing.T) {
	raw := []byte(`{"openFloor":{"events":[]}}`)
	rec, _ := serve(t, phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.RawJSON(http.StatusAccepted, raw)
	}))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(raw), rec.Body.String())
}
