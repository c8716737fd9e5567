package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error wraps a cause with the HTTP status code that the RESTful
// adapter should report for it. Only genuine faults and request-level
// problems are represented this way; business-rule rejections (such as
// an ineligible borrow) are ordinary boolean results, not errors.
type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest marks err as an invalid-input condition, such as an
// insertion attempt with an empty record ID.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

// NotFound marks err as an absent-record condition.
func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict marks err as a duplicate-key condition, raised when an
// insertion reuses an ID which already exists in the same collection.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// IsNotFound reports whether err (or some error which it wraps)
// represents an absent-record condition. Use cases which treat absence
// as a normal outcome, such as the borrow eligibility check, rely on
// it in order to avoid faulting.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) &&
		e.HTTPStatusCode == http.StatusNotFound
}
