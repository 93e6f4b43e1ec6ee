package pct

//go:generate errtrace -w .

import (
	"github.com/ghettovoice/uriref/internal/constraints"
)

// Table classifies raw bytes allowed unencoded in one URI component context,
// following the ABNF of RFC 3986. A table may additionally allow
// percent-encoded octets ("%" HEXDIG HEXDIG).
//
// Tables are immutable once built. The package-level tables cover every
// context of the RFC grammar and must be used instead of hand-rolled ones to
// keep component values valid for their target slot.
type Table struct {
	arr       [256]bool
	allowsEnc bool
}

// NewTable builds a table allowing exactly the given unencoded bytes.
// It panics if any byte is not ASCII or equals '%'.
func NewTable(allowed string) *Table {
	t := new(Table)
	for i := 0; i < len(allowed); i++ {
		c := allowed[i]
		if c >= 0x80 || c == '%' {
			panic("pct: cannot allow non-ASCII byte or %")
		}
		t.arr[c] = true
	}
	return t
}

// Or returns a new table allowing every byte pattern allowed by t or by other.
func (t *Table) Or(other *Table) *Table {
	n := *t
	for i := range n.arr {
		n.arr[i] = n.arr[i] || other.arr[i]
	}
	n.allowsEnc = n.allowsEnc || other.allowsEnc
	return &n
}

// Sub returns a new table allowing every byte pattern allowed by t but not by other.
func (t *Table) Sub(other *Table) *Table {
	n := *t
	for i := range n.arr {
		if other.arr[i] {
			n.arr[i] = false
		}
	}
	if other.allowsEnc {
		n.allowsEnc = false
	}
	return &n
}

// WithEncoded returns a copy of t that also allows percent-encoded octets.
func (t *Table) WithEncoded() *Table {
	n := *t
	n.allowsEnc = true
	return &n
}

// Allows reports whether the given unencoded byte is allowed by the table.
func (t *Table) Allows(c byte) bool { return t.arr[c] }

// AllowsEncoded reports whether percent-encoded octets are allowed by the table.
func (t *Table) AllowsEncoded() bool { return t.allowsEnc }

// IsSubset reports whether other allows at least all the byte patterns allowed by t.
func (t *Table) IsSubset(other *Table) bool {
	for i := range t.arr {
		if t.arr[i] && !other.arr[i] {
			return false
		}
	}
	return !t.allowsEnc || other.allowsEnc
}

// Validate reports whether every byte of s is allowed by the table,
// checking percent triplets when the table allows encoded octets.
func Validate[T constraints.Byteseq](s T, t *Table) bool {
	if t.allowsEnc {
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c == '%' {
				if i+2 >= len(s) || !ishex(s[i+1]) || !ishex(s[i+2]) {
					return false
				}
				i += 2
				continue
			}
			if !t.arr[c] {
				return false
			}
		}
		return true
	}
	for i := 0; i < len(s); i++ {
		if !t.arr[s[i]] {
			return false
		}
	}
	return true
}

// Predefined tables for the contexts of the RFC 3986 grammar, documented with
// the ABNF notation of RFC 5234.
var (
	// Alpha is `ALPHA = %x41-5A / %x61-7A`.
	Alpha = NewTable("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

	// Digit is `DIGIT = %x30-39`.
	Digit = NewTable("0123456789")

	// HexDigit is `HEXDIG = DIGIT / "A" / "B" / "C" / "D" / "E" / "F"`,
	// with lowercase letters accepted as RFC 3986 prescribes for pct-encoded.
	HexDigit = Digit.Or(NewTable("ABCDEFabcdef"))

	// Scheme is `scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )`.
	Scheme = Alpha.Or(Digit).Or(NewTable("+-."))

	// Unreserved is `unreserved = ALPHA / DIGIT / "-" / "." / "_" / "~"`.
	Unreserved = Alpha.Or(Digit).Or(NewTable("-._~"))

	// GenDelims is `gen-delims = ":" / "/" / "?" / "#" / "[" / "]" / "@"`.
	GenDelims = NewTable(":/?#[]@")

	// SubDelims is `sub-delims = "!" / "$" / "&" / "'" / "(" / ")"
	// / "*" / "+" / "," / ";" / "="`.
	SubDelims = NewTable("!$&'()*+,;=")

	// Reserved is `reserved = gen-delims / sub-delims`.
	Reserved = GenDelims.Or(SubDelims)

	// Userinfo is `userinfo = *( unreserved / pct-encoded / sub-delims / ":" )`.
	Userinfo = Unreserved.Or(SubDelims).Or(NewTable(":")).WithEncoded()

	// IPvFuture is the trailing part of
	// `IPvFuture = "v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" )`.
	IPvFuture = Unreserved.Or(SubDelims).Or(NewTable(":"))

	// RegName is `reg-name = *( unreserved / pct-encoded / sub-delims )`.
	RegName = Unreserved.Or(SubDelims).WithEncoded()

	// Pchar is `pchar = unreserved / pct-encoded / sub-delims / ":" / "@"`.
	Pchar = Unreserved.Or(SubDelims).Or(NewTable(":@")).WithEncoded()

	// Path is `path = *( pchar / "/" )`.
	Path = Pchar.Or(NewTable("/"))

	// SegmentNzNc is `segment-nz-nc = 1*( unreserved / pct-encoded / sub-delims / "@" )`.
	SegmentNzNc = Unreserved.Or(SubDelims).Or(NewTable("@")).WithEncoded()

	// Query is `query = *( pchar / "/" / "?" )`.
	Query = Pchar.Or(NewTable("/?"))

	// Fragment is `fragment = *( pchar / "/" / "?" )`.
	Fragment = Query

	// Data preserves only unreserved characters and encodes the others.
	// It suits arbitrary key/value data not bound to a grammar slot.
	Data = Unreserved.WithEncoded()
)

const upperhex = "0123456789ABCDEF"

func ishex(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
