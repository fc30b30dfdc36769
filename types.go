package fetch

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/cybergodev/fetch/internal/proxy"
	"github.com/cybergodev/fetch/internal/validation"
)

const (
	maxTimeout   = 30 * time.Minute
	maxRedirects = 50
)

// Config controls how a Client sends requests. A zero Timeout means the
// client imposes no deadline of its own; a zero MaxResponseBodySize means
// bodies are read without a size limit.
type Config struct {
	Timeout time.Duration

	// ProxyURL takes precedence over EnableSystemProxy.
	ProxyURL          string
	EnableSystemProxy bool

	TLSConfig           *tls.Config
	MinTLSVersion       uint16
	MaxTLSVersion       uint16
	InsecureSkipVerify  bool
	MaxResponseBodySize int64

	UserAgent       string
	Headers         map[string]string
	FollowRedirects bool
	MaxRedirects    int
	EnableHTTP2     bool

	// Logger receives debug and warning records about each request.
	// Nil disables logging.
	Logger *slog.Logger
}

type RequestOption func(*Request) error

// Request is the mutable view of an outgoing request that options edit.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    any
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:             30 * time.Second,
		MinTLSVersion:       tls.VersionTLS12,
		MaxTLSVersion:       tls.VersionTLS13,
		InsecureSkipVerify:  false,
		MaxResponseBodySize: 10 * 1024 * 1024,
		UserAgent:           "fetch/1.0",
		Headers:             make(map[string]string),
		FollowRedirects:     true,
		MaxRedirects:        10,
		EnableHTTP2:         true,
	}
}

// ValidateConfig validates the configuration with reasonable limits
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return ErrNilConfig
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("%w: cannot be negative, got %v", ErrInvalidTimeout, cfg.Timeout)
	}
	if cfg.Timeout > maxTimeout {
		return fmt.Errorf("%w: too large (max %v), got %v", ErrInvalidTimeout, maxTimeout, cfg.Timeout)
	}

	if cfg.MaxResponseBodySize < 0 {
		return fmt.Errorf("MaxResponseBodySize cannot be negative, got %d", cfg.MaxResponseBodySize)
	}

	if cfg.MaxRedirects < 0 || cfg.MaxRedirects > maxRedirects {
		return fmt.Errorf("%w: must be between 0 and %d, got %d", ErrInvalidRedirects, maxRedirects, cfg.MaxRedirects)
	}

	if cfg.MinTLSVersion != 0 && cfg.MaxTLSVersion != 0 && cfg.MinTLSVersion > cfg.MaxTLSVersion {
		return fmt.Errorf("MinTLSVersion %x is above MaxTLSVersion %x", cfg.MinTLSVersion, cfg.MaxTLSVersion)
	}

	if cfg.ProxyURL != "" {
		if _, err := proxy.ParseProxyString(cfg.ProxyURL); err != nil {
			return fmt.Errorf("invalid ProxyURL: %w", err)
		}
	}

	if err := validation.ValidateUserAgent(cfg.UserAgent); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}

	for key, value := range cfg.Headers {
		if err := validation.ValidateHeaderKeyValue(key, value); err != nil {
			return fmt.Errorf("%w %s: %v", ErrInvalidHeader, key, err)
		}
	}

	return nil
}
