package domain

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when the refresh token is absent or the
// refresh call is rejected. It is terminal: the credential store has been
// cleared and the user must re-authenticate.
var ErrSessionExpired = errors.New("session expired")

var ErrNoActiveBooking = errors.New("no active booking")

// RequestError is any non-2xx response that is not part of the refresh
// protocol. Status 0 means the request timed out before a response arrived.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request timed out: %s", e.Message)
	}
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// NetworkError is a transport-level failure: the request never produced an
// HTTP response. The caller may retry manually.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
