package fetch

import (
	"errors"

	"github.com/cybergodev/fetch/internal/engine"
)

var (
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = engine.ErrClientClosed

	// ErrNilConfig is returned when a nil configuration is provided.
	// Always provide a valid Config or use DefaultConfig().
	ErrNilConfig = errors.New("config cannot be nil")

	// ErrInvalidHeader is returned when header validation fails.
	// Headers must not contain control characters or exceed size limits.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrInvalidTimeout is returned when timeout is negative or exceeds limits.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidRedirects is returned when MaxRedirects is out of range.
	ErrInvalidRedirects = errors.New("invalid redirect limit")

	// ErrResponseBodyEmpty is returned by WriteBody when the result carries no
	// response at all. An empty body is not an error.
	ErrResponseBodyEmpty = errors.New("response body is empty")

	// ErrResponseBodyTooLarge is returned when the body exceeds MaxResponseBodySize.
	ErrResponseBodyTooLarge = engine.ErrResponseBodyTooLarge
)

// ClientError is the error returned when a request produced no response.
// Use errors.As to inspect its Type and Code.
type ClientError = engine.ClientError

type ErrorType = engine.ErrorType

const (
	ErrorTypeUnknown         = engine.ErrorTypeUnknown
	ErrorTypeNetwork         = engine.ErrorTypeNetwork
	ErrorTypeDNS             = engine.ErrorTypeDNS
	ErrorTypeTimeout         = engine.ErrorTypeTimeout
	ErrorTypeContextCanceled = engine.ErrorTypeContextCanceled
	ErrorTypeTLS             = engine.ErrorTypeTLS
	ErrorTypeCertificate     = engine.ErrorTypeCertificate
	ErrorTypeTransport       = engine.ErrorTypeTransport
	ErrorTypeResponseRead    = engine.ErrorTypeResponseRead
	ErrorTypeValidation      = engine.ErrorTypeValidation
)
