package engine

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

type ResponseProcessor struct {
	config *Config
}

func NewResponseProcessor(config *Config) *ResponseProcessor {
	return &ResponseProcessor{config: config}
}

func (p *ResponseProcessor) Process(httpResp *http.Response) (*Response, error) {
	if httpResp == nil {
		return nil, fmt.Errorf("HTTP response is nil")
	}

	body, err := p.readBody(httpResp)
	if err != nil {
		return nil, err
	}

	contentLength := httpResp.ContentLength
	if contentLength < 0 {
		contentLength = int64(len(body))
	}

	return &Response{
		StatusCode:    httpResp.StatusCode,
		Status:        httpResp.Status,
		Proto:         httpResp.Proto,
		Headers:       httpResp.Header,
		RawBody:       body,
		ContentLength: contentLength,
	}, nil
}

// ProcessHead builds a Response from the head alone and hands back the body
// unread, guarded by the same size limit and read error wrapping as Process.
func (p *ResponseProcessor) ProcessHead(httpResp *http.Response) (*Response, io.ReadCloser) {
	var body io.ReadCloser = http.NoBody
	if httpResp.Body != nil {
		body = &limitedBody{rc: httpResp.Body, max: p.config.MaxResponseBodySize}
	}

	return &Response{
		StatusCode:    httpResp.StatusCode,
		Status:        httpResp.Status,
		Proto:         httpResp.Proto,
		Headers:       httpResp.Header,
		ContentLength: httpResp.ContentLength,
	}, body
}

// readBody reads the whole body. A MaxResponseBodySize of zero means no limit.
func (p *ResponseProcessor) readBody(httpResp *http.Response) ([]byte, error) {
	if httpResp.Body == nil {
		return nil, nil
	}

	maxSize := p.config.MaxResponseBodySize
	var reader io.Reader = httpResp.Body
	if maxSize > 0 {
		// One extra byte tells an exact fit apart from an overflow.
		reader = io.LimitReader(reader, maxSize+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &responseReadError{err: err}
	}

	if maxSize > 0 && int64(len(body)) > maxSize {
		return nil, fmt.Errorf("%w: exceeds limit of %d bytes", ErrResponseBodyTooLarge, maxSize)
	}

	return body, nil
}

type responseReadError struct {
	err error
}

func (e *responseReadError) Error() string {
	return e.err.Error()
}

func (e *responseReadError) Unwrap() error {
	return e.err
}

// limitedBody fails with ErrResponseBodyTooLarge once more than max bytes
// have been read. A max of zero means no limit.
type limitedBody struct {
	rc   io.ReadCloser
	max  int64
	read int64
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.rc.Read(p)
	b.read += int64(n)

	if b.max > 0 && b.read > b.max {
		n -= int(b.read - b.max)
		if n < 0 {
			n = 0
		}
		return n, fmt.Errorf("%w: exceeds limit of %d bytes", ErrResponseBodyTooLarge, b.max)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return n, &responseReadError{err: err}
	}
	return n, err
}

func (b *limitedBody) Close() error {
	return b.rc.Close()
}
