package fetch

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient creates a client with short timeouts and HTTP/2 disabled.
func newTestClient(t *testing.T) Client {
	t.Helper()

	config := DefaultConfig()
	config.Timeout = 5 * time.Second
	config.UserAgent = "fetch-test/1.0"
	config.EnableHTTP2 = false

	client, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// newEchoServer replies with the request method, body and a few request
// headers mirrored back as X-Echo-* response headers.
func newEchoServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("X-Echo-Method", r.Method)
		w.Header().Set("X-Echo-User-Agent", r.UserAgent())
		w.Header().Set("X-Echo-Content-Type", r.Header.Get("Content-Type"))
		w.Header().Set("X-Echo-Custom", r.Header.Get("X-Custom"))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}))
	t.Cleanup(server.Close)
	return server
}
