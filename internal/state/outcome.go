package state

import (
	"errors"
	"net/http"
	"time"

	"github.com/five82/hyquery/internal/query"
)

// Outcome is the result of one fetch. Err is nil only when the exchange
// returned 2xx and the body decoded.
//
// A decode failure or non-2xx status still carries the response metadata and
// RawText. Response is set whenever the body decoded, even alongside an
// *query.HTTPError.
type Outcome struct {
	Reason     string
	URL        string
	StartedAt  time.Time
	Duration   time.Duration
	StatusCode int
	Header     http.Header
	Bytes      int
	HasBody    bool
	RawText    string
	Response   *query.Response
	Err        error
}

// OK reports whether the fetch fully succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil && o.HasBody
}

// Class returns a stable classification of the outcome for display.
func (o Outcome) Class() string {
	if o.Err == nil {
		return "ok"
	}
	var (
		terr *query.TransportError
		herr *query.HTTPError
		derr *query.DecodeError
	)
	switch {
	case errors.Is(o.Err, query.ErrInvalidEndpoint):
		return "invalid endpoint"
	case errors.As(o.Err, &terr):
		return terr.Kind.String()
	case errors.As(o.Err, &herr):
		return "http status"
	case errors.As(o.Err, &derr):
		return "decode"
	default:
		return "error"
	}
}
