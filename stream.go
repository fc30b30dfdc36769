package fetch

import (
	"io"
	"net/http"
)

// StreamResult is a response whose body has not been read yet. The head is
// available as soon as Stream returns. Call Close when done, whether or not
// the body was read.
type StreamResult struct {
	Request  *RequestInfo
	Response *ResponseInfo // RawBody is always nil
	Meta     *RequestMeta

	body io.ReadCloser
}

// Proto returns the protocol version of the response, e.g. "HTTP/1.1".
func (s *StreamResult) Proto() string {
	if s == nil || s.Response == nil {
		return ""
	}
	return s.Response.Proto
}

func (s *StreamResult) StatusCode() int {
	if s == nil || s.Response == nil {
		return 0
	}
	return s.Response.StatusCode
}

func (s *StreamResult) Headers() http.Header {
	if s == nil || s.Response == nil {
		return nil
	}
	return s.Response.Headers
}

// WriteBody copies the unread body to w as it arrives. A read failure part
// way through is returned with the count of bytes already written.
func (s *StreamResult) WriteBody(w io.Writer) (int64, error) {
	if s == nil || s.body == nil {
		return 0, ErrResponseBodyEmpty
	}
	return io.Copy(w, s.body)
}

// Close releases the connection. Closing an unread body does not wait for it.
func (s *StreamResult) Close() error {
	if s == nil || s.body == nil {
		return nil
	}
	return s.body.Close()
}
