package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybergodev/fetch"
	"github.com/cybergodev/fetch/internal/logging"
)

const helloBody = "hello from the mock\n"

func newMockServer(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/hello", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("X-Zeta", "last")
		w.Header().Add("X-Alpha", "one")
		w.Header().Add("X-Alpha", "two")
		io.WriteString(w, helloBody)
	})
	r.Post("/hello", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, "posted")
	})
	r.Get("/truncated", writeTruncated)

	release := make(chan struct{})
	r.Get("/endless", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "first chunk\n")
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	// Runs before server.Close.
	t.Cleanup(func() { close(release) })

	return server
}

// writeTruncated promises 100 bytes, sends 5 and drops the connection.
func writeTruncated(w http.ResponseWriter, _ *http.Request) {
	conn, buf, err := w.(http.Hijacker).Hijack()
	if err != nil {
		return
	}
	defer conn.Close()
	buf.WriteString("HTTP/1.1 200 OK\r\nContent-Length: 100\r\nContent-Type: text/plain\r\n\r\nshort")
	buf.Flush()
}

func newClient(t *testing.T) fetch.Client {
	t.Helper()

	cfg := fetch.CLIConfig()
	cfg.EnableSystemProxy = false
	cfg.EnableHTTP2 = false

	client, err := fetch.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestDispatch_PrintBody(t *testing.T) {
	server := newMockServer(t)
	var out bytes.Buffer

	d := NewDispatcher(newClient(t), &out, logging.NewNop())
	err := d.Dispatch(context.Background(), RequestSpec{
		Method:    MethodGet,
		URL:       server.URL + "/hello",
		PrintBody: true,
	})
	require.NoError(t, err)

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "Response: HTTP/1.1 200 OK\nHeaders:\n"), got)
	assert.True(t, strings.HasSuffix(got, "\n\n"+helloBody), got)
}

func TestDispatch_NoBody(t *testing.T) {
	server := newMockServer(t)
	var out bytes.Buffer

	d := NewDispatcher(newClient(t), &out, nil)
	err := d.Dispatch(context.Background(), RequestSpec{
		Method: MethodGet,
		URL:    server.URL + "/hello",
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Response: HTTP/1.1 200 OK")
	assert.NotContains(t, out.String(), helloBody)
	assert.True(t, strings.HasSuffix(out.String(), "\n\n"))
}

func TestDispatch_Post(t *testing.T) {
	server := newMockServer(t)
	var out bytes.Buffer

	d := NewDispatcher(newClient(t), &out, nil)
	err := d.Dispatch(context.Background(), RequestSpec{
		Method:    MethodPost,
		URL:       server.URL + "/hello",
		PrintBody: true,
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Response: HTTP/1.1 201 Created")
	assert.True(t, strings.HasSuffix(out.String(), "posted"))
}

func TestDispatch_HeadersSorted(t *testing.T) {
	server := newMockServer(t)
	var out bytes.Buffer

	d := NewDispatcher(newClient(t), &out, nil)
	require.NoError(t, d.Dispatch(context.Background(), RequestSpec{URL: server.URL + "/hello"}))

	lines := strings.Split(out.String(), "\n")
	var headers []string
	for _, line := range lines[2:] {
		if line == "" {
			break
		}
		headers = append(headers, line)
	}

	require.NotEmpty(t, headers)
	assert.IsIncreasing(t, headerNames(headers))
	assert.Contains(t, out.String(), "X-Alpha: one\nX-Alpha: two\n")
	assert.Contains(t, out.String(), "X-Zeta: last\n")
}

func headerNames(lines []string) []string {
	names := make([]string, 0, len(lines))
	seen := make(map[string]bool)
	for _, line := range lines {
		name, _, _ := strings.Cut(line, ":")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func TestDispatch_SendFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	var out bytes.Buffer
	d := NewDispatcher(newClient(t), &out, nil)

	err := d.Dispatch(context.Background(), RequestSpec{URL: url, PrintBody: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSend)

	var clientErr *fetch.ClientError
	assert.ErrorAs(t, err, &clientErr)
	assert.Empty(t, out.String())
}

func TestDispatch_InvalidURLIsSendFailure(t *testing.T) {
	var out bytes.Buffer
	d := NewDispatcher(newClient(t), &out, nil)

	err := d.Dispatch(context.Background(), RequestSpec{URL: "not a url"})
	assert.ErrorIs(t, err, ErrSend)
	assert.Empty(t, out.String())
}

// failingWriter accepts the first allowed writes and fails every later one.
type failingWriter struct {
	allowed int
	buf     bytes.Buffer
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.allowed <= 0 {
		return 0, errors.New("stdout closed")
	}
	w.allowed--
	return w.buf.Write(p)
}

func TestDispatch_BodyCopyFailure(t *testing.T) {
	server := newMockServer(t)
	out := &failingWriter{allowed: 1}

	d := NewDispatcher(newClient(t), out, nil)
	err := d.Dispatch(context.Background(), RequestSpec{
		URL:       server.URL + "/hello",
		PrintBody: true,
	})

	assert.ErrorIs(t, err, ErrBodyCopy)
	assert.NotErrorIs(t, err, ErrSend)
	assert.Contains(t, out.buf.String(), "Response: HTTP/1.1 200 OK")
}

func TestDispatch_LogsFetching(t *testing.T) {
	server := newMockServer(t)
	var logs bytes.Buffer

	d := NewDispatcher(newClient(t), io.Discard, logging.New(&logs, nil))
	require.NoError(t, d.Dispatch(context.Background(), RequestSpec{URL: server.URL + "/hello"}))

	assert.Contains(t, logs.String(), "msg=fetching")
	assert.Contains(t, logs.String(), "method=GET")
}

func TestDispatch_TruncatedBodyWithoutPrintBody(t *testing.T) {
	server := newMockServer(t)
	var out bytes.Buffer

	d := NewDispatcher(newClient(t), &out, nil)
	err := d.Dispatch(context.Background(), RequestSpec{URL: server.URL + "/truncated"})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "Response: HTTP/1.1 200 OK\nHeaders:\n"), out.String())
	assert.NotContains(t, out.String(), "short")
}

func TestDispatch_TruncatedBodyWithPrintBody(t *testing.T) {
	server := newMockServer(t)
	var out bytes.Buffer

	d := NewDispatcher(newClient(t), &out, nil)
	err := d.Dispatch(context.Background(), RequestSpec{
		URL:       server.URL + "/truncated",
		PrintBody: true,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBodyCopy)
	assert.NotErrorIs(t, err, ErrSend)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.True(t, strings.HasPrefix(out.String(), "Response: HTTP/1.1 200 OK\nHeaders:\n"), out.String())
	assert.True(t, strings.HasSuffix(out.String(), "\n\nshort"), out.String())
}

func TestDispatch_EndlessBodyWithoutPrintBody(t *testing.T) {
	server := newMockServer(t)
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d := NewDispatcher(newClient(t), &out, nil)
	start := time.Now()
	err := d.Dispatch(ctx, RequestSpec{URL: server.URL + "/endless"})

	require.NoError(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
	assert.Contains(t, out.String(), "Response: HTTP/1.1 200 OK")
	assert.Contains(t, out.String(), "Content-Type: text/event-stream\n")
	assert.NotContains(t, out.String(), "first chunk")
}
