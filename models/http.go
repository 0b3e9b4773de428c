package models

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Request is the transport-independent view of one inbound HTTP request.
// It is built by the dispatcher from the wire request, handed to guards
// (read-only) and finally to exactly one handler.
type Request struct {
	// Method is the upper-case HTTP method (e.g. "GET").
	Method string

	// Path is the decoded URL path, always starting with "/".
	Path string

	// Header holds request headers. Keys are canonicalised, so lookups
	// through Header.Get are case-insensitive.
	Header http.Header

	// Query holds the multi-valued query parameters.
	Query url.Values

	// Body is the raw request body, read once and bounded by the server's
	// body limit. Guards may parse it any number of times.
	Body []byte

	// Params holds path parameters bound by the matched route pattern.
	// It is replaced for every candidate route the dispatcher tries.
	Params map[string]string

	// RemoteAddr is the network address of the client.
	RemoteAddr string
}

// Param returns the path parameter bound under name and whether it exists.
func (r *Request) Param(name string) (string, bool) {
	v, ok := r.Params[name]
	return v, ok
}

// ContentType returns the media type of the body without parameters,
// lower-cased (e.g. "application/json").
func (r *Request) ContentType() string {
	ct := r.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// Response is the outcome of a dispatch: built by one handler invocation or
// by an error path, then written back by the server.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// NewResponse returns an empty response with the given status.
func NewResponse(status int) *Response {
	return &Response{
		Status: status,
		Header: make(http.Header),
	}
}

// Text returns a plain-text response.
func Text(status int, body string) *Response {
	resp := NewResponse(status)
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.Body = []byte(body)
	return resp
}

// JSON marshals data into a JSON response. A marshaling failure is returned
// to the caller so handlers can treat it as a fault.
func JSON(status int, data any) (*Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	resp := NewResponse(status)
	resp.Header.Set("Content-Type", "application/json")
	resp.Body = body
	return resp, nil
}

// Empty returns a response without a body (e.g. 204 No Content).
func Empty(status int) *Response {
	return NewResponse(status)
}

// Error returns a plain-text error response whose body is message followed
// by a newline, mirroring http.Error. An empty message falls back to the
// status text.
func Error(status int, message string) *Response {
	if message == "" {
		message = http.StatusText(status)
	}
	resp := Text(status, message+"\n")
	resp.Header.Set("X-Content-Type-Options", "nosniff")
	return resp
}
