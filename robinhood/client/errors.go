package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds returned by the client. Match them with errors.Is.
var (
	// ErrAuthentication means login or account bootstrap failed, or the
	// session is still not established afterwards.
	ErrAuthentication = errors.New("robinhood: authentication failed")
	// ErrTransport means a request produced no usable response, or a body
	// that had to be decoded could not be.
	ErrTransport = errors.New("robinhood: bad response")
	// ErrSymbolNotFound means no instrument (or quote) matched a symbol.
	ErrSymbolNotFound = errors.New("robinhood: symbol not found")
	// ErrOrderRejected means the orders endpoint did not accept the order.
	ErrOrderRejected = errors.New("robinhood: order rejected")
)

// Rejection markers found in order placement responses.
const (
	MarkerMalformed      = "malformed"
	MarkerNonFieldErrors = "non_field_errors"
	MarkerDetail         = "detail"
	MarkerRejectReason   = "reject_reason"
	MarkerEmptyID        = "empty_id"
)

// wrapTransport tags a failure as ErrTransport, keeping the cause text.
func wrapTransport(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return errors.Wrap(ErrTransport, msg)
}

// RejectionError describes why an order placement was rejected.
type RejectionError struct {
	Marker string // which rejection rule fired
	Symbol string
	Side   string
	Body   string // raw response body
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("robinhood: order rejected (%s) for %s %s: %s", e.Marker, e.Side, e.Symbol, e.Body)
}

// Is makes errors.Is(err, ErrOrderRejected) hold for rejections.
func (e *RejectionError) Is(target error) bool {
	return target == ErrOrderRejected
}
