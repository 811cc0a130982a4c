// Package halerr classifies failures of the hardware accessors so callers can
// tell a bad index apart from a driver failure or a missing capability.
package halerr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Unknown is returned by KindOf for errors not created by this package.
	Unknown Kind = iota
	InvalidArgument
	HandleOpen
	Query
	Parse
	NotSupported
	DivByZero
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case HandleOpen:
		return "handle open"
	case Query:
		return "query"
	case Parse:
		return "parse"
	case NotSupported:
		return "not supported"
	case DivByZero:
		return "division by zero"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	// Op names the accessor or vendor call that failed, e.g. "dsl.LineInfo".
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, halerr.ErrNotSupported) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Errorf(kind Kind, op string, format string, args ...interface{}) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

var (
	ErrInvalidArgument = &Error{Kind: InvalidArgument}
	ErrHandleOpen      = &Error{Kind: HandleOpen}
	ErrQuery           = &Error{Kind: Query}
	ErrParse           = &Error{Kind: Parse}
	ErrNotSupported    = &Error{Kind: NotSupported}
	ErrDivByZero       = &Error{Kind: DivByZero}
)

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
