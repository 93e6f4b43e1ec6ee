package uriref

import (
	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/constraints"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/util"
)

// Parse parses a URI reference from the given input src (string or []byte).
//
// The empty string is a valid relative reference. A string input is never
// copied: the returned [Uri] and every component read from it borrow the
// input's backing bytes. Parsing is lossless, with no implicit
// normalization, so u.String() reproduces the input byte for byte.
//
// On failure the returned error is a [*ParseError] carrying the byte offset
// of the first violation.
func Parse[T constraints.Byteseq](src T) (*Uri, error) {
	s := string(src)
	m, err := grammar.Parse(s)
	if err != nil {
		return nil, errtrace.Wrap(newParseError(err))
	}
	return &Uri{s: s, meta: m}, nil
}

// MustParse is like [Parse] but panics on invalid input.
// It is intended for literals whose validity is asserted by the caller.
func MustParse[T constraints.Byteseq](src T) *Uri {
	return util.Must2(Parse(src))
}
