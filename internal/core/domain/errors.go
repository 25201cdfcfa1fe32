package domain

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned by storage backends when no session record exists
// under the well-known key.
var ErrNoSession = errors.New("no saved session")

// ValidationError reports input that violates a local constraint. It is
// produced before any network call and carries the exact message shown to
// the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServiceError reports that the remote banking service was reachable and
// rejected the request. Message holds the service's own error text when the
// response carried one; callers substitute a per-operation fallback when it
// is empty.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service rejected request (status %d)", e.Status)
	}
	return fmt.Sprintf("service rejected request (status %d): %s", e.Status, e.Message)
}

// ConnectivityError reports that the remote banking service could not be
// reached or its response could not be parsed. It is distinct from
// ServiceError so the user can tell "your input was wrong" apart from
// "the service is down".
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: cannot reach banking service: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
