package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trendscout/internal/platform/logger"
	pnet "trendscout/internal/platform/net"
	"trendscout/internal/platform/net/middleware"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveLogged(t *testing.T, opt middleware.AccessLogOptions, h http.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/openfloor", nil)
	req = req.WithContext(logger.Into(req.Context(), zerolog.New(&buf)))

	rec := httptest.NewRecorder()
	chain(h, middleware.RequestID(), middleware.AccessLogZerolog(opt)).ServeHTTP(rec, req)

	line := map[string]any{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	return rec, line
}

func TestAccessLogRecordsRequest(t *testing.T) {
	rec, line := serveLogged(t, middleware.AccessLogOptions{}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = io.WriteString(w, "hel")
		_, _ = io.WriteString(w, "lo")
	})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())

	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "request done", line["message"])
	assert.Equal(t, float64(http.StatusAccepted), line["status"])
	assert.Equal(t, float64(5), line["bytes"])
	assert.Equal(t, "POST", line["method"])
	assert.Equal(t, "/openfloor", line["path"])
	assert.NotEmpty(t, line["request_id"])
}

func TestAccessLogDefaultsTo200(t *testing.T) {
	_, line := serveLogged(t, middleware.AccessLogOptions{}, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "{}")
	})
	assert.Equal(t, float64(http.StatusOK), line["status"])
}

func TestAccessLogMarksSlowRequests(t *testing.T) {
	_, line := serveLogged(t, middleware.AccessLogOptions{Slow: time.Millisecond}, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(3 * time.Millisecond)
	})
	assert.Equal(t, "warn", line["level"])
}

func TestAccessLogSeedsHandlerLogger(t *testing.T) {
	var seen string
	_, line := serveLogged(t, middleware.AccessLogOptions{}, func(_ http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
	})
	assert.Equal(t, line["request_id"], seen)
}
