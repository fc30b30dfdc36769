package engine

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeNetwork
	ErrorTypeDNS
	ErrorTypeTimeout
	ErrorTypeContextCanceled
	ErrorTypeTLS
	ErrorTypeCertificate
	ErrorTypeTransport
	ErrorTypeResponseRead
	ErrorTypeValidation
)

// ClientError describes why a request produced no response.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
	URL     string
	Method  string
}

func (e *ClientError) Error() string {
	msg := e.Message
	if detail := e.detail(); detail != "" {
		msg += ": " + detail
	}
	if e.URL != "" && e.Method != "" {
		return fmt.Sprintf("%s %s: %s", e.Method, sanitizeURL(e.URL), msg)
	}
	return msg
}

// detail is the innermost cause text. *url.Error is peeled off because it
// repeats the URL, credentials included.
func (e *ClientError) detail() string {
	if e.Cause == nil {
		return ""
	}
	cause := e.Cause
	var urlErr *url.Error
	if errors.As(cause, &urlErr) {
		cause = urlErr.Err
	}
	return cause.Error()
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Code returns a stable string code for programmatic handling.
func (e *ClientError) Code() string {
	switch e.Type {
	case ErrorTypeNetwork:
		return "NETWORK_ERROR"
	case ErrorTypeDNS:
		return "DNS_ERROR"
	case ErrorTypeTimeout:
		return "TIMEOUT"
	case ErrorTypeContextCanceled:
		return "CONTEXT_CANCELED"
	case ErrorTypeTLS:
		return "TLS_ERROR"
	case ErrorTypeCertificate:
		return "CERTIFICATE_ERROR"
	case ErrorTypeTransport:
		return "TRANSPORT_ERROR"
	case ErrorTypeResponseRead:
		return "RESPONSE_READ_ERROR"
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// sanitizeURL hides the user info of a URL.
func sanitizeURL(urlStr string) string {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "[invalid-url]"
	}

	if parsedURL.User != nil {
		parsedURL.User = nil
		path := parsedURL.EscapedPath()
		if parsedURL.RawQuery != "" {
			path += "?" + parsedURL.RawQuery
		}
		if parsedURL.Fragment != "" {
			path += "#" + parsedURL.EscapedFragment()
		}
		return fmt.Sprintf("%s://***:***@%s%s", parsedURL.Scheme, parsedURL.Host, path)
	}

	return parsedURL.String()
}

func newValidationError(err error, rawURL, method string) *ClientError {
	return &ClientError{
		Type:    ErrorTypeValidation,
		Message: "request validation failed",
		Cause:   err,
		URL:     rawURL,
		Method:  method,
	}
}

// ClassifyError maps a send or read failure onto an ErrorType. Typed errors
// are checked first; message matching is the fallback for errors net/http
// only reports as text.
func ClassifyError(err error, rawURL, method string) *ClientError {
	if err == nil {
		return nil
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}

	clientErr = &ClientError{
		Cause:  err,
		URL:    rawURL,
		Method: method,
	}

	var (
		readErr     *responseReadError
		dnsErr      *net.DNSError
		unknownCA   x509.UnknownAuthorityError
		hostnameErr x509.HostnameError
		invalidCert x509.CertificateInvalidError
		verifyErr   *tls.CertificateVerificationError
		recordErr   tls.RecordHeaderError
		alertErr    tls.AlertError
		netErr      net.Error
		opErr       *net.OpError
	)

	switch {
	case errors.Is(err, context.Canceled):
		clientErr.Type = ErrorTypeContextCanceled
		clientErr.Message = "request was canceled"
	case errors.Is(err, context.DeadlineExceeded):
		clientErr.Type = ErrorTypeTimeout
		clientErr.Message = "request timed out"
	case errors.As(err, &readErr):
		clientErr.Type = ErrorTypeResponseRead
		clientErr.Message = "failed to read response body"
	case errors.Is(err, ErrResponseBodyTooLarge):
		clientErr.Type = ErrorTypeResponseRead
		clientErr.Message = "response body too large"
	case errors.As(err, &dnsErr):
		clientErr.Type = ErrorTypeDNS
		clientErr.Message = "DNS resolution failed"
	case errors.As(err, &unknownCA), errors.As(err, &hostnameErr),
		errors.As(err, &invalidCert), errors.As(err, &verifyErr):
		clientErr.Type = ErrorTypeCertificate
		clientErr.Message = "certificate validation error"
	case errors.As(err, &recordErr), errors.As(err, &alertErr):
		clientErr.Type = ErrorTypeTLS
		clientErr.Message = "TLS handshake error"
	case errors.As(err, &netErr) && netErr.Timeout():
		clientErr.Type = ErrorTypeTimeout
		clientErr.Message = "network timeout occurred"
	case errors.As(err, &opErr):
		clientErr.Type = ErrorTypeNetwork
		clientErr.Message = "network operation failed"
		if opErr.Op == "dial" {
			clientErr.Message = "connection failed"
		}
	default:
		classifyByMessage(clientErr, err.Error())
	}

	return clientErr
}

func classifyByMessage(clientErr *ClientError, errMsg string) {
	lower := strings.ToLower(errMsg)
	switch {
	case strings.Contains(lower, "certificate") || strings.Contains(lower, "x509"):
		clientErr.Type = ErrorTypeCertificate
		clientErr.Message = "certificate validation error"
	case strings.Contains(lower, "tls:") || strings.Contains(lower, "handshake"):
		clientErr.Type = ErrorTypeTLS
		clientErr.Message = "TLS handshake error"
	case strings.Contains(lower, "connection refused"):
		clientErr.Type = ErrorTypeNetwork
		clientErr.Message = "connection refused by server"
	case strings.Contains(lower, "no such host"):
		clientErr.Type = ErrorTypeDNS
		clientErr.Message = "DNS resolution failed"
	case strings.Contains(lower, "timeout"):
		clientErr.Type = ErrorTypeTimeout
		clientErr.Message = "operation timed out"
	case strings.Contains(lower, "redirects") || strings.Contains(lower, "transport"):
		clientErr.Type = ErrorTypeTransport
		clientErr.Message = "HTTP transport error"
	default:
		clientErr.Type = ErrorTypeUnknown
		clientErr.Message = "request failed"
	}
}
