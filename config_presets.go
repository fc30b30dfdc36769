package fetch

import (
	"crypto/tls"
	"time"
)

// SecureConfig returns a configuration optimized for security
func SecureConfig() *Config {
	return &Config{
		Timeout:             15 * time.Second, // Shorter timeout for security
		InsecureSkipVerify:  false,            // Always verify TLS
		MaxResponseBodySize: 5 * 1024 * 1024,  // 5MB limit
		UserAgent:           "fetch/1.0",
		Headers:             make(map[string]string),
		FollowRedirects:     false, // Disable redirects for security
		EnableHTTP2:         true,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
		},
	}
}

// MinimalConfig returns a minimal configuration with basic settings
func MinimalConfig() *Config {
	return &Config{
		Timeout:             30 * time.Second,
		MaxResponseBodySize: 1 * 1024 * 1024, // 1MB
		UserAgent:           "fetch/1.0",
		Headers:             make(map[string]string),
		FollowRedirects:     false,
		EnableHTTP2:         false,
	}
}

// CLIConfig returns the configuration used by the fetch command: whatever the
// server sends is read in full, the environment's proxy is honoured and up to
// ten redirects are followed. There is no client-side deadline.
func CLIConfig() *Config {
	return &Config{
		Timeout:             0,
		EnableSystemProxy:   true,
		MinTLSVersion:       tls.VersionTLS12,
		MaxTLSVersion:       tls.VersionTLS13,
		MaxResponseBodySize: 0,
		UserAgent:           "fetch/1.0",
		Headers:             make(map[string]string),
		FollowRedirects:     true,
		MaxRedirects:        10,
		EnableHTTP2:         true,
	}
}
