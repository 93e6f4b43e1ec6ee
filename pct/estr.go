// Package pct implements the percent-encoded string model of RFC 3986:
// per-context byte classification tables, the borrowed validated string
// [EStr] and the owned growable buffer [EString].
//
// All operations are pure. [EStr] values produced by a parse share the
// backing array of the input and are never copies.
package pct

import (
	"iter"
	"strings"
	"unicode/utf8"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/constraints"
	"github.com/ghettovoice/uriref/internal/util"
)

// Error is a string type that implements the error interface.
type Error string

func (e Error) Error() string { return string(e) }

// Encoding marks encoding errors for errors.As based checks.
func (Error) Encoding() bool { return true }

const (
	// ErrInvalidText is returned when a string is not valid
	// percent-encoded text for its target table.
	ErrInvalidText Error = "invalid percent-encoded text"
	// ErrInvalidUTF8 is returned when decoded bytes are not valid UTF-8.
	ErrInvalidUTF8 Error = "invalid UTF-8"
)

// EStr is a possibly percent-encoded string validated for some grammar
// context: every '%' is followed by two hex digits and every raw byte is
// allowed in that context.
//
// EStr borrows its bytes from the string it was validated against; it owns
// nothing and is safe to share. Equality with == operates on the raw encoded
// bytes, so two percent-encodings of the same character with different hex
// case are unequal until normalized.
type EStr string

// NewEStr validates s against the given table and returns it as an [EStr].
func NewEStr[T constraints.Byteseq](s T, t *Table) (EStr, error) {
	if !Validate(s, t) {
		return "", errtrace.Wrap(ErrInvalidText)
	}
	return EStr(s), nil
}

// MustEStr is like [NewEStr] but panics on invalid input.
// It is intended for compile-time constants whose validity is asserted by the caller.
func MustEStr[T constraints.Byteseq](s T, t *Table) EStr {
	return util.Must2(NewEStr(s, t))
}

// String returns the raw (still encoded) text.
func (s EStr) String() string { return string(s) }

// Len returns the length of the raw text in bytes.
func (s EStr) Len() int { return len(s) }

// IsEmpty reports whether the raw text is empty.
func (s EStr) IsEmpty() bool { return len(s) == 0 }

// Split returns an iterator over the substrings of s separated by sep,
// in the manner of strings.Split. Splitting an empty EStr yields one
// empty element.
//
// The separator must be a delimiter byte, not part of any percent triplet,
// so every piece remains valid percent-encoded text.
func (s EStr) Split(sep byte) iter.Seq[EStr] {
	return func(yield func(EStr) bool) {
		rem := string(s)
		for {
			i := strings.IndexByte(rem, sep)
			if i < 0 {
				yield(EStr(rem))
				return
			}
			if !yield(EStr(rem[:i])) {
				return
			}
			rem = rem[i+1:]
		}
	}
}

// SplitOnce splits s into the part before the first occurrence of sep and
// the part after it. The found result reports whether sep was present.
func (s EStr) SplitOnce(sep byte) (before, after EStr, found bool) {
	i := strings.IndexByte(string(s), sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

// Decode replaces each percent triplet with its decoded octet and returns
// the raw bytes. It never fails: the input was validated at construction.
func (s EStr) Decode() []byte {
	return s.AppendDecoded(make([]byte, 0, len(s)))
}

// AppendDecoded appends the decoded bytes of s to dst and returns the
// extended buffer.
func (s EStr) AppendDecoded(dst []byte) []byte {
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			dst = append(dst, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		dst = append(dst, s[i])
	}
	return dst
}

// DecodeString decodes s and interprets the bytes as UTF-8 text,
// failing with [ErrInvalidUTF8] when they are not.
func (s EStr) DecodeString() (string, error) {
	if strings.IndexByte(string(s), '%') < 0 {
		if !utf8.ValidString(string(s)) {
			return "", errtrace.Wrap(ErrInvalidUTF8)
		}
		return string(s), nil
	}
	b := s.Decode()
	if !utf8.Valid(b) {
		return "", errtrace.Wrap(ErrInvalidUTF8)
	}
	return string(b), nil
}

// DecodeLossy decodes s to text, substituting the Unicode replacement
// character at each invalid UTF-8 boundary.
func (s EStr) DecodeLossy() string {
	if strings.IndexByte(string(s), '%') < 0 {
		return strings.ToValidUTF8(string(s), "�")
	}
	return strings.ToValidUTF8(string(s.Decode()), "�")
}

// Encode percent-encodes every byte of src not allowed by the table and
// returns the result. '%' itself is always encoded: src is treated as raw
// data, not as already-encoded text.
func Encode[T constraints.Byteseq](src T, t *Table) EStr {
	return EStr(AppendEncoded(make([]byte, 0, len(src)), []byte(string(src)), t))
}

// AppendEncoded appends the percent-encoded form of src to dst and returns
// the extended buffer.
func AppendEncoded(dst, src []byte, t *Table) []byte {
	for _, c := range src {
		if t.Allows(c) {
			dst = append(dst, c)
			continue
		}
		dst = append(dst, '%', upperhex[c>>4], upperhex[c&15])
	}
	return dst
}

// Decode converts each "%" HEXDIG HEXDIG substring of s into the hex-decoded
// byte, passing other bytes through. Malformed triplets pass through intact.
func Decode[T constraints.Byteseq](s T) []byte {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && ishex(s[i+1]) && ishex(s[i+2]) {
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		b = append(b, s[i])
	}
	return b
}
