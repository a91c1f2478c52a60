package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrParse      = errors.New("parse error")
	ErrUpstream   = errors.New("upstream api error")
)

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ValidationError reports bad user input: a missing column, malformed
// numbers, empty text or an unreadable CSV. The action is aborted and the
// user may retry.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrBadRequest}
	}
	return []error{ErrBadRequest, e.Err}
}

func NewValidationError(message string, err error) error {
	return &ValidationError{Message: message, Err: err}
}

// APIError wraps a failed call to an external service.
type APIError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s api error (status %d): %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s api error: %v", e.Service, e.Err)
}

func (e *APIError) Unwrap() []error {
	return []error{ErrUpstream, e.Err}
}

func NewAPIError(service string, statusCode int, err error) error {
	return &APIError{Service: service, StatusCode: statusCode, Err: err}
}

// ParseError reports model output that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Err}
}
