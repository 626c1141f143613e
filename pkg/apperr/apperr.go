// Package apperr defines the error taxonomy shared by services and controllers.
//
// Services return one of the sentinels (or a New error) and the controller
// renders it with the carried HTTP status and message. Anything else is an
// unexpected failure: it is logged and masked as a 500.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a client-facing failure with a fixed HTTP status.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// New builds an Error with an arbitrary status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }

var (
	ErrInvalidBody        = BadRequest("Invalid request body")
	ErrUsernameTaken      = BadRequest("Username already exists")
	ErrInvalidRole        = BadRequest("Invalid role")
	ErrPasswordMismatch   = BadRequest("Passwords do not match")
	ErrInvalidCredentials = Unauthorized("Invalid credentials")
	ErrNotApproved        = Unauthorized("User not yet approved")
	ErrInvalidAdmin       = Unauthorized("Invalid admin credentials")
	ErrCourseNotFound     = NotFound("Course not found")
	ErrOrderNotFound      = NotFound("Order not found")
	ErrStudentNotFound    = NotFound("Student not found")
	ErrStudentNotApproved = NotFound("Student not found or not approved")
)

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Status returns the HTTP status carried by err, or 500 for anything untyped.
func Status(err error) int {
	if e, ok := As(err); ok {
		return e.Status
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err, or fallback when err is
// not an *Error.
func Message(err error, fallback string) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return fallback
}
