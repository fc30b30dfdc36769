package engine

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrClientClosed         = errors.New("client is closed")
	ErrResponseBodyTooLarge = errors.New("response body too large")
)

// Client executes one request per call over a shared transport.
// It never retries; a failed send is reported to the caller as a *ClientError.
type Client struct {
	config *Config
	logger *slog.Logger

	transport         *Transport
	requestProcessor  *RequestProcessor
	responseProcessor *ResponseProcessor

	closed    int32
	closeOnce sync.Once
}

// Config is the engine view of the public configuration.
type Config struct {
	Timeout time.Duration

	ProxyURL          string
	EnableSystemProxy bool

	TLSConfig          *tls.Config
	MinTLSVersion      uint16
	MaxTLSVersion      uint16
	InsecureSkipVerify bool

	MaxResponseBodySize int64

	UserAgent       string
	Headers         map[string]string
	FollowRedirects bool
	MaxRedirects    int
	EnableHTTP2     bool

	Logger *slog.Logger
}

type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    any
	Context context.Context
}

type Response struct {
	StatusCode    int
	Status        string
	Proto         string
	Headers       http.Header
	RawBody       []byte
	ContentLength int64

	Method         string
	URL            string
	RequestHeaders http.Header

	RequestID     string
	Duration      time.Duration
	RedirectChain []string
}

// StreamResponse is a Response whose body has not been read. RawBody is
// always nil; the bytes come from Body.
type StreamResponse struct {
	*Response
	Body io.ReadCloser
}

type RequestOption func(*Request) error

func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	transport, err := NewTransport(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	return &Client{
		config:            config,
		logger:            logger.With(slog.String("component", "engine")),
		transport:         transport,
		requestProcessor:  NewRequestProcessor(config),
		responseProcessor: NewResponseProcessor(config),
	}, nil
}

// exchange is one sent request whose response head has arrived.
type exchange struct {
	httpReq   *http.Request
	httpResp  *http.Response
	chain     []string
	rawURL    string
	requestID string
	start     time.Time
	logger    *slog.Logger
}

// fill copies request metadata onto resp. The final URL is the one the last
// redirect landed on.
func (x *exchange) fill(resp *Response) {
	resp.Method = x.httpReq.Method
	resp.URL = x.rawURL
	if x.httpResp.Request != nil && x.httpResp.Request.URL != nil {
		resp.URL = x.httpResp.Request.URL.String()
	}
	resp.RequestHeaders = x.httpReq.Header
	resp.RequestID = x.requestID
	resp.Duration = time.Since(x.start)
	resp.RedirectChain = x.chain
}

// Request sends exactly one HTTP request and reads the whole response.
func (c *Client) Request(ctx context.Context, method, url string, options ...RequestOption) (*Response, error) {
	x, err := c.send(ctx, method, url, options)
	if err != nil {
		return nil, err
	}
	defer x.httpResp.Body.Close()

	resp, err := c.responseProcessor.Process(x.httpResp)
	if err != nil {
		clientErr := ClassifyError(err, x.rawURL, x.httpReq.Method)
		x.logger.Warn("reading response failed",
			slog.String("url", sanitizeURL(x.rawURL)),
			slog.Any("error", err))
		return nil, clientErr
	}
	x.fill(resp)

	x.logger.Debug("response received",
		slog.String("proto", resp.Proto),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(resp.RawBody)),
		slog.Duration("duration", resp.Duration))

	return resp, nil
}

// Stream sends exactly one HTTP request and returns as soon as the response
// head has arrived. The body is left unread; the caller must close it.
func (c *Client) Stream(ctx context.Context, method, url string, options ...RequestOption) (*StreamResponse, error) {
	x, err := c.send(ctx, method, url, options)
	if err != nil {
		return nil, err
	}

	resp, body := c.responseProcessor.ProcessHead(x.httpResp)
	x.fill(resp)

	x.logger.Debug("response head received",
		slog.String("proto", resp.Proto),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", resp.Duration))

	return &StreamResponse{Response: resp, Body: body}, nil
}

// send applies options, builds and sends the request, and returns once the
// response head is in. Apart from ErrClientClosed, failures are *ClientError.
func (c *Client) send(ctx context.Context, method, url string, options []RequestOption) (*exchange, error) {
	if atomic.LoadInt32(&c.closed) == 1 {
		return nil, ErrClientClosed
	}
	if ctx == nil {
		ctx = context.Background()
	}

	requestID := uuid.NewString()
	logger := c.logger.With(slog.String("request_id", requestID))

	req := &Request{
		Method:  method,
		URL:     url,
		Context: ctx,
		Headers: make(map[string]string, 4),
	}

	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(req); err != nil {
			return nil, newValidationError(err, req.URL, req.Method)
		}
	}

	httpReq, err := c.requestProcessor.Build(req)
	if err != nil {
		return nil, newValidationError(err, req.URL, req.Method)
	}

	logger.Debug("sending request",
		slog.String("method", httpReq.Method),
		slog.String("url", sanitizeURL(req.URL)))

	start := time.Now()
	httpResp, chain, err := c.transport.RoundTrip(httpReq)
	if err != nil {
		clientErr := ClassifyError(err, req.URL, req.Method)
		logger.Warn("request failed",
			slog.String("method", httpReq.Method),
			slog.String("url", sanitizeURL(req.URL)),
			slog.String("code", clientErr.Code()),
			slog.Any("error", err))
		return nil, clientErr
	}

	return &exchange{
		httpReq:   httpReq,
		httpResp:  httpResp,
		chain:     chain,
		rawURL:    req.URL,
		requestID: requestID,
		start:     start,
		logger:    logger,
	}, nil
}

func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		c.transport.Close()
	})
	return nil
}
