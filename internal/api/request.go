package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

var ErrEmptyBody = errors.New("response body is empty")

type requestIDKey struct{}

// ContextWithRequestID makes every backend call made with ctx carry id as its
// X-Request-ID, so bridge traces and backend logs line up.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by ContextWithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Request is a replayable description of one backend call. Body holds the
// encoded payload so the same Request can be sent again after a refresh.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Header http.Header
}

// NewRequest builds a request, JSON-encoding body when it is not nil.
func NewRequest(method, path string, body any) (*Request, error) {
	req := &Request{
		Method: method,
		Path:   path,
		Header: make(http.Header),
	}

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		req.Body = encoded
	}

	return req, nil
}

// Response is a fully read backend response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return ErrEmptyBody
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
