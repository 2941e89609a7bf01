package testutil

import (
	"io"
	"net/http"
	"strings"
)

// RoundTripperFunc adapts a function into an http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// ClientFunc returns an http.Client whose transport is fn.
func ClientFunc(fn func(*http.Request) (*http.Response, error)) *http.Client {
	return &http.Client{Transport: RoundTripperFunc(fn)}
}

// Response builds a response with the given status and body.
func Response(r *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}
}
