package service

import (
	"errors"
	"fmt"
)

// Error codes. The HTTP layer maps each to a status in NewErrorCodeToStatusCodeMaps.
const (
	// ErrInternalServerError covers store failures and hard probe failures.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means the record is absent or expired in the registry store.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means the announce payload is malformed.
	ErrBadParameter = "bad_parameter"
	// ErrBadGateway means the announced server did not pass the liveness probe.
	ErrBadGateway = "bad_gateway"
)

// MyError is a coded registry error.
type MyError struct {
	// Code is one of the Err* codes.
	Code string `json:"code,omitempty"`
	// Message is what the HTTP layer may return to the client.
	Message string `json:"message"`
	// Inner is logged, never returned to the client.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// newCoded returns the MyError already carried by inner, if any, so the innermost code wins
// when a store error travels up through the services.
func newCoded(code string, message string, inner error) *MyError {
	if myInner := ToMyError(inner); myInner != nil {
		return myInner
	}
	return NewMyError(code, message, inner)
}

func NewInternalServerError(message string, inner error) *MyError {
	return newCoded(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	return newCoded(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	return newCoded(ErrBadParameter, message, inner)
}

// NewBadGatewayError never adopts the code of a wrapped MyError: the probe failure is what the caller sees.
func NewBadGatewayError(message string, inner error) *MyError {
	return NewMyError(ErrBadGateway, message, inner)
}

func (e MyError) Error() string {
	if e.Inner == nil {
		return e.Code + " " + e.Message
	}
	return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
}

func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns the first MyError in err's chain, or nil.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// ToMyErrorCode returns the code of the first MyError in err's chain, or "".
func ToMyErrorCode(err error) string {
	if e := ToMyError(err); e != nil {
		return e.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	return ToMyErrorCode(err) == code && code != ""
}

func IsInternalServerError(err error) bool { return IsMyError(err, ErrInternalServerError) }

func IsEntityNotFoundError(err error) bool { return IsMyError(err, ErrEntityNotFound) }

func IsBadParameterError(err error) bool { return IsMyError(err, ErrBadParameter) }

func IsBadGatewayError(err error) bool { return IsMyError(err, ErrBadGateway) }
