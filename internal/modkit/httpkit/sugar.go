package httpkit

import "net/http"

// Get registers a body-less handler under GET using the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post registers a handler under POST using the envelope adapter. The handler reads the body itself
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}
