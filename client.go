// Package fetch is a small blocking HTTP client: one call sends one request
// and returns the whole response, with no retries layered on top.
//
// Basic Usage:
//
//	client, err := fetch.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	result, err := client.Get("https://hyper.rs")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Proto(), result.Response.Status)
//	result.WriteBody(os.Stdout)
package fetch

import (
	"context"
	"fmt"
	"maps"

	"github.com/cybergodev/fetch/internal/engine"
)

type Client interface {
	Get(url string, options ...RequestOption) (*Result, error)
	Post(url string, options ...RequestOption) (*Result, error)

	Request(ctx context.Context, method, url string, options ...RequestOption) (*Result, error)

	// Stream returns once the response head arrives and leaves the body
	// unread. The caller must Close the StreamResult.
	Stream(ctx context.Context, method, url string, options ...RequestOption) (*StreamResult, error)

	Close() error
}

type clientImpl struct {
	engine *engine.Client
}

func New(config ...*Config) (Client, error) {
	var cfg *Config
	if len(config) > 0 && config[0] != nil {
		if err := ValidateConfig(config[0]); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		cfg = deepCopyConfig(config[0])
	} else {
		cfg = DefaultConfig()
	}

	engineClient, err := engine.NewClient(convertToEngineConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &clientImpl{engine: engineClient}, nil
}

// deepCopyConfig keeps later edits to the caller's Config from reaching a
// client that is already running.
func deepCopyConfig(src *Config) *Config {
	dst := *src

	if src.Headers != nil {
		dst.Headers = make(map[string]string, len(src.Headers))
		maps.Copy(dst.Headers, src.Headers)
	}
	if src.TLSConfig != nil {
		dst.TLSConfig = src.TLSConfig.Clone()
	}

	return &dst
}

// NewSecure creates a new client with security-focused configuration.
func NewSecure() (Client, error) {
	return New(SecureConfig())
}

// NewMinimal creates a new client with minimal features and lightweight configuration.
func NewMinimal() (Client, error) {
	return New(MinimalConfig())
}

func (c *clientImpl) Get(url string, options ...RequestOption) (*Result, error) {
	return c.Request(context.Background(), "GET", url, options...)
}

func (c *clientImpl) Post(url string, options ...RequestOption) (*Result, error) {
	return c.Request(context.Background(), "POST", url, options...)
}

func (c *clientImpl) Request(ctx context.Context, method, url string, options ...RequestOption) (*Result, error) {
	resp, err := c.engine.Request(ctx, method, url, convertRequestOptions(options)...)
	if err != nil {
		return nil, err
	}
	return convertEngineResponseToResult(resp), nil
}

func (c *clientImpl) Stream(ctx context.Context, method, url string, options ...RequestOption) (*StreamResult, error) {
	resp, err := c.engine.Stream(ctx, method, url, convertRequestOptions(options)...)
	if err != nil {
		return nil, err
	}

	result := convertEngineResponseToResult(resp.Response)
	return &StreamResult{
		Request:  result.Request,
		Response: result.Response,
		Meta:     result.Meta,
		body:     resp.Body,
	}, nil
}

func (c *clientImpl) Close() error {
	return c.engine.Close()
}

func convertToEngineConfig(cfg *Config) *engine.Config {
	return &engine.Config{
		Timeout:             cfg.Timeout,
		ProxyURL:            cfg.ProxyURL,
		EnableSystemProxy:   cfg.EnableSystemProxy,
		TLSConfig:           cfg.TLSConfig,
		MinTLSVersion:       cfg.MinTLSVersion,
		MaxTLSVersion:       cfg.MaxTLSVersion,
		InsecureSkipVerify:  cfg.InsecureSkipVerify,
		MaxResponseBodySize: cfg.MaxResponseBodySize,
		UserAgent:           cfg.UserAgent,
		Headers:             cfg.Headers,
		FollowRedirects:     cfg.FollowRedirects,
		MaxRedirects:        cfg.MaxRedirects,
		EnableHTTP2:         cfg.EnableHTTP2,
		Logger:              cfg.Logger,
	}
}

// convertRequestOptions adapts public options to the engine request.
func convertRequestOptions(options []RequestOption) []engine.RequestOption {
	if len(options) == 0 {
		return nil
	}

	engineOptions := make([]engine.RequestOption, 0, len(options))

	for _, opt := range options {
		if opt == nil {
			continue
		}

		engineOptions = append(engineOptions, func(req *engine.Request) error {
			publicReq := &Request{
				Method:  req.Method,
				URL:     req.URL,
				Headers: req.Headers,
				Body:    req.Body,
			}

			if err := opt(publicReq); err != nil {
				return err
			}

			req.Method = publicReq.Method
			req.URL = publicReq.URL
			req.Headers = publicReq.Headers
			req.Body = publicReq.Body
			return nil
		})
	}
	return engineOptions
}

func convertEngineResponseToResult(engineResp *engine.Response) *Result {
	if engineResp == nil {
		return nil
	}

	return &Result{
		Request: &RequestInfo{
			Method:  engineResp.Method,
			URL:     engineResp.URL,
			Headers: engineResp.RequestHeaders,
		},
		Response: &ResponseInfo{
			StatusCode:    engineResp.StatusCode,
			Status:        engineResp.Status,
			Proto:         engineResp.Proto,
			Headers:       engineResp.Headers,
			RawBody:       engineResp.RawBody,
			ContentLength: engineResp.ContentLength,
		},
		Meta: &RequestMeta{
			RequestID:     engineResp.RequestID,
			Duration:      engineResp.Duration,
			RedirectChain: engineResp.RedirectChain,
			RedirectCount: len(engineResp.RedirectChain),
		},
	}
}
