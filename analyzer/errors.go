package analyzer

import (
	"errors"
	"fmt"
)

// Error codes shared by the analyzer, storage and API layers.
const (
	EFETCH       = "fetch"
	EANALYSIS    = "analysis"
	EPERSISTENCE = "persistence"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
)

// Error is a coded application error. Message is safe to show to a client.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf returns an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError returns an *Error that keeps err reachable through errors.Unwrap.
func WrapError(code string, err error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrorCode returns the code of the first *Error in err's chain.
// Non-nil errors without one are reported as EANALYSIS.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return EFETCH
	}
	return EANALYSIS
}

// ErrorMessage returns the client-facing message for err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// FetchError is returned by a Fetcher when the page could not be retrieved.
// StatusCode is zero for transport failures.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Failed to fetch URL. Status code: %d", e.StatusCode)
	}
	return fmt.Sprintf("Failed to fetch URL: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
