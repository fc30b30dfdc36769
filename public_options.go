package fetch

import (
	"fmt"
	"io"

	"github.com/cybergodev/fetch/internal/validation"
)

// WithHeader sets a request header
func WithHeader(key, value string) RequestOption {
	return func(r *Request) error {
		if err := validation.ValidateHeaderKeyValue(key, value); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
		}
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
		return nil
	}
}

// WithHeaderMap sets multiple request headers
func WithHeaderMap(headers map[string]string) RequestOption {
	return func(r *Request) error {
		for k, v := range headers {
			if err := WithHeader(k, v)(r); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(userAgent string) RequestOption {
	return WithHeader("User-Agent", userAgent)
}

// WithContentType sets the Content-Type header
func WithContentType(contentType string) RequestOption {
	return WithHeader("Content-Type", contentType)
}

// WithBody sets the raw request body. Accepted types are string, []byte and
// io.Reader.
func WithBody(body any) RequestOption {
	return func(r *Request) error {
		switch body.(type) {
		case nil, string, []byte, io.Reader:
		default:
			return fmt.Errorf("unsupported body type %T", body)
		}
		r.Body = body
		return nil
	}
}

// WithText sets the request body as plain text and sets appropriate Content-Type
func WithText(content string) RequestOption {
	return func(r *Request) error {
		r.Body = content
		return WithContentType("text/plain; charset=utf-8")(r)
	}
}

// WithBinary sets the request body as binary data with optional content type
func WithBinary(data []byte, contentType ...string) RequestOption {
	return func(r *Request) error {
		r.Body = data

		ct := "application/octet-stream"
		if len(contentType) > 0 && contentType[0] != "" {
			ct = contentType[0]
		}
		return WithContentType(ct)(r)
	}
}
