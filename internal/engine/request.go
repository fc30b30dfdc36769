package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cybergodev/fetch/internal/validation"
)

type RequestProcessor struct {
	config *Config
}

func NewRequestProcessor(config *Config) *RequestProcessor {
	return &RequestProcessor{config: config}
}

// Build turns a Request into an *http.Request. Request headers win over the
// configured defaults, which win over the configured user agent.
func (p *RequestProcessor) Build(req *Request) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		return nil, fmt.Errorf("method cannot be empty")
	}

	parsedURL, err := validation.ValidateRequestURL(req.URL)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, parsedURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range p.config.Headers {
		httpReq.Header.Set(key, value)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if httpReq.Header.Get("User-Agent") == "" && p.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", p.config.UserAgent)
	}

	return httpReq, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(v), "text/plain; charset=utf-8", nil
	case []byte:
		return bytes.NewReader(v), "application/octet-stream", nil
	case io.Reader:
		return v, "", nil
	default:
		return nil, "", fmt.Errorf("unsupported body type %T", body)
	}
}
