package testspec

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	ErrFormat        = errors.New("format error")
	ErrUnknownKind   = errors.New("unknown document kind")
)

// ParseError describes why a test document was rejected. Kind is one of
// ErrUnexpectedEOF, ErrFormat or ErrUnknownKind and can be matched with
// errors.Is.
type ParseError struct {
	Kind error
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func unexpectedEOF(what string) error {
	return &ParseError{Kind: ErrUnexpectedEOF, Msg: fmt.Sprintf("input ends when reading %s", what)}
}

func formatError(format string, args ...any) error {
	return &ParseError{Kind: ErrFormat, Msg: fmt.Sprintf(format, args...)}
}
