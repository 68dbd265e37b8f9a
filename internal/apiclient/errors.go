package apiclient

import (
	"errors"
	"fmt"
)

// RequestError is the single failure type the pipeline produces.
// Status is zero for transport failures and the HTTP status for non-2xx
// responses. Cause carries the underlying error when one exists.
type RequestError struct {
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("request failed: %v", e.Cause)
	}
	return "request failed: " + e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// IsStatus reports whether err is a RequestError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Status == status
}
