// Package http provides the router seam, server and JSON response helpers
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "trendscout/internal/platform/errors"
	pnet "trendscout/internal/platform/net"
)

// Envelope wraps every non protocol response. Open Floor payloads bypass it via RawJSON
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// Response is what return style handlers produce
type Response struct {
	Status int // 0 means 200, ignored when Body is an error
	Body   any
	Header stdhttp.Header
	Raw    []byte // written verbatim instead of an Envelope
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// RawJSON returns a response that writes b verbatim as application/json
func RawJSON(status int, b []byte) Response { return Response{Status: status, Raw: b} }

// Error returns a response whose status comes from the error code
func Error(err error) Response { return Response{Body: err} }

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Handle adapts a Response returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}

	if resp.Raw != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write(resp.Raw)
		return
	}

	env := Envelope{RequestID: pnet.RequestID(r.Context()), Data: resp.Body}
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wire := perr.WireFrom(err)
		env.Code, env.Error, env.Data = wire.Code, wire.Message, nil
	}
	env.StatusCode, env.Status = status, stdhttp.StatusText(status)
	JSON(w, status, env)
}
