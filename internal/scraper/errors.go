package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedPage        = errors.New("unexpected page")
	ErrMissingYear           = errors.New("missing selected year")
	ErrUnexpectedTableFormat = errors.New("unexpected table format")
	ErrDateParse             = errors.New("date parse failed")
	ErrNetwork               = errors.New("network request failed")
)

// Error wraps extraction and fetch failures with their kind
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Is matches the error kind so callers can use errors.Is(err, ErrMissingYear)
func (e *Error) Is(target error) bool { return e.Kind == target }

func (e *Error) Unwrap() error { return e.Err }

// Message returns the human readable part of the error without its kind
func (e *Error) Message() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func failf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func wrap(kind error, err error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}
