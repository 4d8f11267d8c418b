package api

import (
	"errors"
	"fmt"
)

var errMissingResult = errors.New("envelope carries no result")

// AuthError reports an authentication failure. Exhausted marks the terminal
// case: the request was already replayed once, or the refresh call itself
// failed and the stored tokens were cleared. Callers react by sending the
// operator back to sign-in.
type AuthError struct {
	Status    int
	Exhausted bool
	Err       error
}

func (e *AuthError) Error() string {
	if e.Exhausted {
		if e.Err != nil {
			return fmt.Sprintf("authentication exhausted: %v", e.Err)
		}
		return "authentication exhausted"
	}
	return fmt.Sprintf("authentication failed (status %d)", e.Status)
}

func (e *AuthError) Unwrap() error { return e.Err }

// DomainError carries a well-formed non-200 envelope back to the caller
// verbatim. The backend owns the message; the client never retries these.
type DomainError struct {
	Code       int
	Status     string
	Message    string
	HTTPStatus int
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Code, e.Status)
}

// TransportError covers network failures, timeouts and undecodable bodies.
// They are surfaced generically and never trigger the refresh path.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
