package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vss-session/internal/config"
	apperrors "vss-session/internal/errors"
	"vss-session/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBreaker struct {
	open      bool
	successes int
	failures  int
}

func (b *stubBreaker) IsOpen() bool   { return b.open }
func (b *stubBreaker) RecordSuccess() { b.successes++ }
func (b *stubBreaker) RecordFailure() { b.failures++ }

type stubMetrics struct {
	counters map[string]int
	timings  int
}

func (m *stubMetrics) IncrementCounter(name string, tags map[string]string) {
	if m.counters == nil {
		m.counters = make(map[string]int)
	}
	m.counters[name+":"+tags["status"]]++
}

func (m *stubMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.timings++
}

func newTestClient(baseURL string, opts ...ClientOption) *Client {
	return NewClient(config.APIConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	}, logging.Discard(), opts...)
}

func TestClient_Send_AttachesHeaders(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(HeaderAuthorization)
		gotRequestID = r.Header.Get(HeaderRequestID)
		gotContentType = r.Header.Get("Content-Type")
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL + "/")
	req, err := NewRequest(http.MethodPost, "/auth/me", map[string]string{"a": "b"})
	require.NoError(t, err)
	req.Query = map[string][]string{"page": {"2"}}

	resp, err := client.Send(context.Background(), req, "T1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer T1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "page=2", gotQuery)

	var body map[string]bool
	require.NoError(t, resp.Decode(&body))
	assert.True(t, body["ok"])
}

func TestClient_Send_RequestIDFromContext(t *testing.T) {
	var gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get(HeaderRequestID)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req, err := NewRequest(http.MethodGet, "/auth/me", nil)
	require.NoError(t, err)

	ctx := ContextWithRequestID(context.Background(), "trace-abc")
	_, err = newTestClient(server.URL).Send(ctx, req, "")
	require.NoError(t, err)

	assert.Equal(t, "trace-abc", gotRequestID)
}

func TestClient_Send_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(HeaderAuthorization)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	req, err := NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)

	resp, err := newTestClient(server.URL).Send(context.Background(), req, "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.ErrorIs(t, resp.Decode(&struct{}{}), ErrEmptyBody)
}

func TestClient_Send_StatusError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "error field", status: http.StatusUnauthorized, body: `{"error":"Token has expired"}`, message: "Token has expired"},
		{name: "message field", status: http.StatusBadRequest, body: `{"message":"Email already registered"}`, message: "Email already registered"},
		{name: "no body", status: http.StatusForbidden, body: ``, message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			req, err := NewRequest(http.MethodGet, "/auth/me", nil)
			require.NoError(t, err)

			_, err = newTestClient(server.URL).Send(context.Background(), req, "")
			require.Error(t, err)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.Status)
			assert.Equal(t, tt.message, ServerMessage(err))
			assert.Equal(t, tt.status == http.StatusUnauthorized, IsUnauthorized(err))
		})
	}
}

func TestClient_Send_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	breaker := &stubBreaker{}
	req, err := NewRequest(http.MethodGet, "/auth/me", nil)
	require.NoError(t, err)

	_, err = newTestClient(url, WithBreaker(breaker)).Send(context.Background(), req, "")

	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
	assert.Equal(t, apperrors.NetworkUnreachable, apperrors.CodeOf(err))
	assert.Equal(t, 1, breaker.failures)
}

func TestClient_Send_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(config.APIConfig{BaseURL: server.URL, Timeout: 20 * time.Millisecond}, logging.Discard())
	req, err := NewRequest(http.MethodGet, "/slow", nil)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), req, "")

	require.Error(t, err)
	assert.Equal(t, apperrors.NetworkTimeout, apperrors.CodeOf(err))
}

func TestClient_Send_CircuitOpen(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	metrics := &stubMetrics{}
	client := newTestClient(server.URL, WithBreaker(&stubBreaker{open: true}), WithMetrics(metrics))
	req, err := NewRequest(http.MethodGet, "/auth/me", nil)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), req, "")

	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, apperrors.NetworkCircuitOpen, apperrors.CodeOf(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	assert.Equal(t, 1, metrics.counters["api.request.rejected:circuit_open"])
}

func TestClient_Send_BreakerAndMetrics(t *testing.T) {
	status := http.StatusOK
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer server.Close()

	breaker := &stubBreaker{}
	metrics := &stubMetrics{}
	client := newTestClient(server.URL, WithBreaker(breaker), WithMetrics(metrics))
	req, err := NewRequest(http.MethodGet, "/users", nil)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), req, "")
	require.NoError(t, err)

	status = http.StatusBadGateway
	_, err = client.Send(context.Background(), req, "")
	require.Error(t, err)

	assert.Equal(t, 1, breaker.successes)
	assert.Equal(t, 1, breaker.failures)
	assert.Equal(t, 1, metrics.counters["api.request:200"])
	assert.Equal(t, 1, metrics.counters["api.request:502"])
	assert.Equal(t, 2, metrics.timings)
}

func TestClient_Send_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(config.APIConfig{
		BaseURL:            server.URL,
		Timeout:            time.Second,
		RateLimitPerSecond: 0.01,
		RateLimitBurst:     1,
	}, logging.Discard())
	req, err := NewRequest(http.MethodGet, "/health", nil)
	require.NoError(t, err)

	_, err = client.Send(context.Background(), req, "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Send(ctx, req, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.NetworkTimeout, apperrors.CodeOf(err))
}
