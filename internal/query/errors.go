package query

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidEndpoint is returned when host, port, or path cannot form a URL.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrCharsetDecode is returned when body bytes are not valid under the
	// declared charset. The accompanying text is NonDecodableText.
	ErrCharsetDecode = errors.New("body is not decodable under declared charset")
)

// TransportErrorKind classifies network-layer failures.
type TransportErrorKind int

const (
	TransportOther TransportErrorKind = iota
	TransportTimeout
	TransportConnectionFailed
)

func (k TransportErrorKind) String() string {
	switch k {
	case TransportTimeout:
		return "timeout"
	case TransportConnectionFailed:
		return "connection failed"
	default:
		return "other"
	}
}

// TransportError reports a request that never produced an HTTP response.
type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPError is a response delivered with a non-2xx status code.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("http status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if hint := e.Hint(); hint != "" {
		msg += ": " + hint
	}
	return msg
}

// Hint returns operator guidance for well-known status codes.
func (e *HTTPError) Hint() string {
	if e.StatusCode == http.StatusNotAcceptable {
		return "check Accept header and endpoint path; this endpoint requires Accept: application/json"
	}
	return ""
}

// DecodeErrorKind classifies document-level decode failures.
type DecodeErrorKind int

const (
	DecodeMalformed DecodeErrorKind = iota
	DecodeNotObject
)

func (k DecodeErrorKind) String() string {
	if k == DecodeNotObject {
		return "top level is not an object"
	}
	return "malformed json"
}

// DecodeError is the only error Decode returns. Field-level mismatches never
// produce one.
type DecodeError struct {
	Kind DecodeErrorKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decode response: " + e.Kind.String()
	}
	return fmt.Sprintf("decode response: %s: %v", e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
