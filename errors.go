package uriref

//go:generate errtrace -w .

import (
	"errors"
	"fmt"

	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/pct"
)

// Parse error sentinels. A [ParseError] unwraps to one of these, so they
// can be matched with errors.Is.
var (
	ErrInvalidScheme    error = grammar.ErrInvalidScheme
	ErrInvalidAuthority error = grammar.ErrInvalidAuthority
	ErrInvalidHost      error = grammar.ErrInvalidHost
	ErrInvalidPort      error = grammar.ErrInvalidPort
	ErrInvalidPath      error = grammar.ErrInvalidPath
	ErrInvalidCharacter error = grammar.ErrInvalidCharacter
	ErrOverflow         error = grammar.ErrOverflow
	ErrUnexpectedEnd    error = grammar.ErrUnexpectedEnd
)

// ErrNotAbsolute is returned by [Uri.ResolveAgainst] when the base is not
// an absolute URI.
var ErrNotAbsolute error = resolutionError("base is not an absolute URI")

// ErrInvalidUTF8 is returned when decoded component bytes are not valid UTF-8.
var ErrInvalidUTF8 error = pct.ErrInvalidUTF8

// ParseError is a grammar violation found while parsing a URI reference.
type ParseError struct {
	Kind error // one of the Err* sentinels
	Idx  int   // byte offset of the first failure
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse URI reference: %s at index %d", e.Kind, e.Idx)
}

func (e *ParseError) Unwrap() error { return e.Kind }

// Grammar marks parse errors for errors.As based checks.
func (*ParseError) Grammar() bool { return true }

func newParseError(err error) error {
	var ge *grammar.Error
	if errors.As(err, &ge) {
		return &ParseError{Kind: ge.Kind, Idx: ge.Idx} //errtrace:skip
	}
	return err //errtrace:skip
}

type resolutionError string

func (e resolutionError) Error() string { return string(e) }
