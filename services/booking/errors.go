package booking

import "fmt"

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBookingError(code, msg string) error {
	return &BookingError{
		Code:    code,
		Message: msg,
	}
}

// Codes returned by the direct booking flow.
const (
	CodeInvalidRequest = "invalidRequest"
	CodeUpstream       = "upstreamError"
)
