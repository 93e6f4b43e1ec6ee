// Package grammar implements the fixed RFC 3986 grammar: a single-pass
// validating scanner producing byte-offset component boundaries, the host
// classifier and per-component validation predicates.
package grammar

//go:generate errtrace -w .

import (
	"fmt"

	"github.com/ghettovoice/uriref/internal/constraints"
	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/pct"
)

const (
	ErrInvalidScheme    errorutil.Error = "invalid scheme"
	ErrInvalidAuthority errorutil.Error = "invalid authority"
	ErrInvalidHost      errorutil.Error = "invalid host"
	ErrInvalidPort      errorutil.Error = "invalid port"
	ErrInvalidPath      errorutil.Error = "invalid path"
	ErrInvalidCharacter errorutil.Error = "invalid character"
	ErrOverflow         errorutil.Error = "value out of range"
	ErrUnexpectedEnd    errorutil.Error = "unexpected end of input"
)

// Error is a grammar violation at a specific byte offset.
type Error struct {
	Kind error // one of the Err* sentinels
	Idx  int   // byte offset of the first failure
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at index %d", e.Kind, e.Idx)
}

func (e *Error) Unwrap() error { return e.Kind }

// Grammar marks grammar errors for errors.As based checks.
func (*Error) Grammar() bool { return true }

func newErr(kind error, idx int) error {
	return &Error{Kind: kind, Idx: idx} //errtrace:skip
}

// IsScheme reports whether s matches `scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )`.
func IsScheme[T constraints.Byteseq](s T) bool {
	if len(s) == 0 || !pct.Alpha.Allows(s[0]) {
		return false
	}
	return pct.Validate(s, pct.Scheme)
}

// IsUserinfo reports whether s matches the userinfo rule.
func IsUserinfo[T constraints.Byteseq](s T) bool {
	return pct.Validate(s, pct.Userinfo)
}

// IsHost reports whether s matches the host rule: an IP literal in square
// brackets, an IPv4 address or a registered name.
func IsHost[T constraints.Byteseq](s T) bool {
	_, err := ClassifyHost(string(s), 0)
	return err == nil
}

// IsPort reports whether s matches `port = *DIGIT`.
func IsPort[T constraints.Byteseq](s T) bool {
	return pct.Validate(s, pct.Digit)
}

// IsQuery reports whether s matches the query rule.
func IsQuery[T constraints.Byteseq](s T) bool {
	return pct.Validate(s, pct.Query)
}

// IsFragment reports whether s matches the fragment rule.
func IsFragment[T constraints.Byteseq](s T) bool {
	return pct.Validate(s, pct.Fragment)
}

// IsPathWithAuthority reports whether s is a valid path following an
// authority component: `path-abempty = *( "/" segment )`.
func IsPathWithAuthority[T constraints.Byteseq](s T) bool {
	if len(s) > 0 && s[0] != '/' {
		return false
	}
	return pct.Validate(s, pct.Path)
}

// IsPathNoAuthority reports whether s is a valid path for a reference with
// no authority: path-absolute, path-rootless (requires a scheme) or
// path-empty. A rootless path must not start with "//", which would be
// indistinguishable from an authority prefix.
func IsPathNoAuthority[T constraints.Byteseq](s T, hasScheme bool) bool {
	if !pct.Validate(s, pct.Path) {
		return false
	}
	if len(s) == 0 {
		return true
	}
	if s[0] == '/' {
		return len(s) < 2 || s[1] != '/'
	}
	if hasScheme {
		return true
	}
	// path-noscheme: no ':' before the first '/'
	for i := 0; i < len(s) && s[i] != '/'; i++ {
		if s[i] == ':' {
			return false
		}
	}
	return true
}
