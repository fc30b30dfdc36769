package engine

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/http2"

	"github.com/cybergodev/fetch/internal/proxy"
)

const defaultMaxRedirects = 10

// Transport owns the http.Transport shared by every request of a Client.
type Transport struct {
	transport *http.Transport
	config    *Config
}

func NewTransport(config *Config) (*Transport, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	proxyFunc, err := resolveProxy(config)
	if err != nil {
		return nil, err
	}

	transport := &http.Transport{
		Proxy:           proxyFunc,
		TLSClientConfig: buildTLSConfig(config),
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			return nil, fmt.Errorf("failed to enable HTTP/2: %w", err)
		}
	} else {
		// A non-nil empty map keeps net/http from negotiating h2 on its own.
		transport.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
	}

	return &Transport{
		transport: transport,
		config:    config,
	}, nil
}

func resolveProxy(config *Config) (func(*http.Request) (*url.URL, error), error) {
	if config.ProxyURL != "" {
		fn, err := proxy.Fixed(config.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL: %w", err)
		}
		return fn, nil
	}
	if config.EnableSystemProxy {
		return proxy.NewDetector().ProxyFunc(), nil
	}
	return nil, nil
}

func buildTLSConfig(config *Config) *tls.Config {
	var tlsConfig *tls.Config
	if config.TLSConfig != nil {
		tlsConfig = config.TLSConfig.Clone()
	} else {
		tlsConfig = &tls.Config{}
	}

	if tlsConfig.MinVersion == 0 {
		tlsConfig.MinVersion = config.MinTLSVersion
	}
	if tlsConfig.MaxVersion == 0 {
		tlsConfig.MaxVersion = config.MaxTLSVersion
	}
	if config.InsecureSkipVerify {
		tlsConfig.InsecureSkipVerify = true
	}
	return tlsConfig
}

// redirectPolicy records every hop into chain. With redirects disabled the
// 3xx response itself is returned.
func (t *Transport) redirectPolicy(chain *[]string) func(*http.Request, []*http.Request) error {
	maxRedirects := t.config.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = defaultMaxRedirects
	}

	return func(req *http.Request, via []*http.Request) error {
		if !t.config.FollowRedirects {
			return http.ErrUseLastResponse
		}
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		*chain = append(*chain, req.URL.String())
		return nil
	}
}

// RoundTrip sends req and returns the response along with the redirect chain
// it followed. Each call gets its own http.Client so chains never mix.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, []string, error) {
	var chain []string
	client := &http.Client{
		Transport:     t.transport,
		CheckRedirect: t.redirectPolicy(&chain),
		Timeout:       t.config.Timeout,
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, chain, fmt.Errorf("transport round trip failed: %w", err)
	}
	return resp, chain, nil
}

func (t *Transport) Close() {
	t.transport.CloseIdleConnections()
}
