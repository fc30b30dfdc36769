// Package proxy resolves the proxy a request should use from the process
// environment and, where the platform has one, the system proxy settings.
package proxy

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
)

// Func matches http.Transport.Proxy.
type Func func(*http.Request) (*url.URL, error)

var envKeys = []string{"HTTP_PROXY", "http_proxy", "HTTPS_PROXY", "https_proxy"}

// Detector resolves the system proxy once and caches the answer.
type Detector struct {
	once      sync.Once
	proxyFunc Func

	// platform is swapped in tests.
	platform func() Func
}

func NewDetector() *Detector {
	return &Detector{platform: detectPlatform}
}

// ProxyFunc returns the detected proxy function, or nil for a direct connection.
func (d *Detector) ProxyFunc() Func {
	d.once.Do(func() {
		d.proxyFunc = d.detect()
	})
	return d.proxyFunc
}

func (d *Detector) detect() Func {
	if hasEnvironmentProxy() {
		return http.ProxyFromEnvironment
	}
	if d.platform != nil {
		return d.platform()
	}
	return nil
}

func hasEnvironmentProxy() bool {
	for _, key := range envKeys {
		if strings.TrimSpace(os.Getenv(key)) != "" {
			return true
		}
	}
	return false
}

// Fixed returns a Func that always routes through rawURL.
func Fixed(rawURL string) (Func, error) {
	u, err := ParseProxyString(rawURL)
	if err != nil {
		return nil, err
	}
	return http.ProxyURL(u), nil
}

// ParseProxyString accepts "host:port", a full proxy URL, or the Windows
// per-protocol form "http=host:port;https=host:port". For the per-protocol
// form the https entry wins over the http entry.
func ParseProxyString(proxyStr string) (*url.URL, error) {
	proxyStr = strings.TrimSpace(proxyStr)
	if proxyStr == "" {
		return nil, fmt.Errorf("empty proxy string")
	}

	if strings.Contains(proxyStr, "=") && !strings.Contains(proxyStr, "://") {
		var httpServer, httpsServer string
		for _, part := range strings.Split(proxyStr, ";") {
			protocol, server, ok := strings.Cut(part, "=")
			if !ok {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(protocol)) {
			case "https":
				httpsServer = strings.TrimSpace(server)
			case "http":
				httpServer = strings.TrimSpace(server)
			}
		}
		switch {
		case httpsServer != "":
			proxyStr = httpsServer
		case httpServer != "":
			proxyStr = httpServer
		default:
			return nil, fmt.Errorf("no http or https entry in proxy string %q", proxyStr)
		}
	}

	if !strings.Contains(proxyStr, "://") {
		proxyStr = "http://" + proxyStr
	}

	u, err := url.Parse(proxyStr)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL: %w", err)
	}

	switch u.Scheme {
	case "http", "https", "socks5", "socks5h":
	default:
		return nil, fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("proxy URL %q has no host", proxyStr)
	}

	return u, nil
}
