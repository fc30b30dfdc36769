package validation

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	MaxHeaderKeyLen   = 256
	MaxHeaderValueLen = 8192
	MaxUserAgentLen   = 512
	MaxURLLen         = 8192
)

// ValidateInputString rejects empty, oversized or control-character input.
// additionalChecks, when non-nil, runs for every rune after the control check.
func ValidateInputString(input string, maxLen int, name string, additionalChecks func(rune) error) error {
	inputLen := len(input)
	if inputLen == 0 {
		return fmt.Errorf("%s cannot be empty", name)
	}
	if inputLen > maxLen {
		return fmt.Errorf("%s too long (max %d)", name, maxLen)
	}

	for _, r := range input {
		if r < 0x20 || r == 0x7F {
			return fmt.Errorf("%s contains invalid characters", name)
		}

		if additionalChecks != nil {
			if err := additionalChecks(r); err != nil {
				return fmt.Errorf("%s validation failed: %w", name, err)
			}
		}
	}
	return nil
}

// ValidateHeaderKeyValue validates a header name and value pair. Headers that
// net/http manages on its own are refused.
func ValidateHeaderKeyValue(key, value string) error {
	if err := ValidateInputString(key, MaxHeaderKeyLen, "header key", func(r rune) error {
		if !isValidHeaderChar(r) {
			return fmt.Errorf("invalid character %q in header key", r)
		}
		return nil
	}); err != nil {
		return err
	}

	switch strings.ToLower(key) {
	case "content-length", "transfer-encoding", "connection", "upgrade", "host":
		return fmt.Errorf("header %q is managed automatically", key)
	}

	if len(value) > MaxHeaderValueLen {
		return fmt.Errorf("header value too long (max %d)", MaxHeaderValueLen)
	}

	for _, r := range value {
		// HTAB is the only control character allowed in a field value.
		if (r < 0x20 && r != 0x09) || r == 0x7F {
			return fmt.Errorf("header value contains invalid characters")
		}
	}

	return nil
}

// ValidateUserAgent allows an empty user agent, which leaves net/http's default.
func ValidateUserAgent(ua string) error {
	if ua == "" {
		return nil
	}
	return ValidateInputString(ua, MaxUserAgentLen, "user agent", nil)
}

// ValidateRequestURL checks that raw is an absolute http or https URL with a host.
func ValidateRequestURL(raw string) (*url.URL, error) {
	if err := ValidateInputString(raw, MaxURLLen, "URL", nil); err != nil {
		return nil, err
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("URL parse failed: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	case "":
		return nil, fmt.Errorf("URL %q has no scheme", raw)
	default:
		return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("URL %q has no host", raw)
	}

	return u, nil
}

func isValidHeaderChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') || r == '-' || r == '_'
}
