package fetch

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Result represents the complete outcome of an HTTP request.
//
// Thread Safety:
// Result objects are immutable after creation and safe to read from
// multiple goroutines concurrently. Do not modify Result fields directly.
type Result struct {
	Request  *RequestInfo
	Response *ResponseInfo
	Meta     *RequestMeta
}

// RequestInfo describes the request as it was sent. URL is the final URL
// after redirects.
type RequestInfo struct {
	Method  string
	URL     string
	Headers http.Header
}

type ResponseInfo struct {
	StatusCode    int
	Status        string
	Proto         string
	Headers       http.Header
	RawBody       []byte
	ContentLength int64
}

type RequestMeta struct {
	RequestID     string
	Duration      time.Duration
	RedirectChain []string
	RedirectCount int
}

// Body returns the response body as a string.
func (r *Result) Body() string {
	if r == nil || r.Response == nil {
		return ""
	}
	return string(r.Response.RawBody)
}

// RawBody returns the response body as raw bytes.
func (r *Result) RawBody() []byte {
	if r == nil || r.Response == nil {
		return nil
	}
	return r.Response.RawBody
}

// StatusCode returns the HTTP status code.
func (r *Result) StatusCode() int {
	if r == nil || r.Response == nil {
		return 0
	}
	return r.Response.StatusCode
}

// Proto returns the protocol version of the response, e.g. "HTTP/1.1".
func (r *Result) Proto() string {
	if r == nil || r.Response == nil {
		return ""
	}
	return r.Response.Proto
}

// Headers returns the response headers.
func (r *Result) Headers() http.Header {
	if r == nil || r.Response == nil {
		return nil
	}
	return r.Response.Headers
}

// WriteBody copies the raw body to w unchanged. An empty body writes nothing
// and is not an error; a nil Result or Response returns ErrResponseBodyEmpty.
func (r *Result) WriteBody(w io.Writer) (int64, error) {
	if r == nil || r.Response == nil {
		return 0, ErrResponseBodyEmpty
	}
	if len(r.Response.RawBody) == 0 {
		return 0, nil
	}
	return io.Copy(w, bytes.NewReader(r.Response.RawBody))
}

// IsSuccess returns true if the response status code indicates success (2xx).
func (r *Result) IsSuccess() bool {
	code := r.StatusCode()
	return code >= 200 && code < 300
}

// IsRedirect returns true if the response status code indicates a redirect (3xx).
func (r *Result) IsRedirect() bool {
	code := r.StatusCode()
	return code >= 300 && code < 400
}

// IsClientError returns true if the response status code indicates a client error (4xx).
func (r *Result) IsClientError() bool {
	code := r.StatusCode()
	return code >= 400 && code < 500
}

// IsServerError returns true if the response status code indicates a server error (5xx).
func (r *Result) IsServerError() bool {
	code := r.StatusCode()
	return code >= 500 && code < 600
}

// String returns a one-line summary without the body.
func (r *Result) String() string {
	if r == nil || r.Response == nil {
		return "Result{}"
	}

	var b strings.Builder
	b.Grow(128)

	b.WriteString("Result{Proto: ")
	b.WriteString(r.Response.Proto)
	b.WriteString(", Status: ")
	b.WriteString(r.Response.Status)
	b.WriteString(", ContentLength: ")
	b.WriteString(strconv.FormatInt(r.Response.ContentLength, 10))

	if len(r.Response.Headers) > 0 {
		b.WriteString(", Headers: ")
		b.WriteString(strconv.Itoa(len(r.Response.Headers)))
	}

	if r.Meta != nil {
		b.WriteString(", Duration: ")
		b.WriteString(r.Meta.Duration.String())
		if r.Meta.RedirectCount > 0 {
			b.WriteString(", Redirects: ")
			b.WriteString(strconv.Itoa(r.Meta.RedirectCount))
		}
	}

	b.WriteByte('}')

	return b.String()
}
