package uriref

import (
	"fmt"
	"io"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/ioutil"
	"github.com/ghettovoice/uriref/internal/util"
	"github.com/ghettovoice/uriref/pct"
)

// Uri is a parsed URI reference: an immutable view of the input string plus
// the component offset table produced by the parse. All accessors are
// non-owning and allocation-free; the substrings they return share the
// backing array of the parsed input.
//
// A Uri is safe to share for concurrent reads: nothing ever mutates the
// backing string after a successful parse.
type Uri struct {
	s    string
	meta grammar.Meta
}

// Scheme returns the scheme component, when present.
// A present scheme is always non-empty.
func (u *Uri) Scheme() (Scheme, bool) {
	if u == nil || !u.meta.HasScheme {
		return "", false
	}
	return Scheme(u.s[:u.meta.SchemeEnd]), true
}

// HasScheme reports whether the reference has a scheme component.
func (u *Uri) HasScheme() bool { return u != nil && u.meta.HasScheme }

// Authority returns the authority component, when present.
func (u *Uri) Authority() (Authority, bool) {
	if u == nil || !u.meta.HasAuthority {
		return Authority{}, false
	}
	return Authority{u: u}, true
}

// HasAuthority reports whether the reference has an authority component.
func (u *Uri) HasAuthority() bool { return u != nil && u.meta.HasAuthority }

// Path returns the path component. The path is always present, possibly empty.
func (u *Uri) Path() pct.EStr {
	if u == nil {
		return ""
	}
	return pct.EStr(u.s[u.meta.PathStart:u.meta.PathEnd])
}

// Query returns the query component, when present.
// An empty query ("?" with nothing after it) is present and empty.
func (u *Uri) Query() (pct.EStr, bool) {
	if u == nil || !u.meta.HasQuery {
		return "", false
	}
	return pct.EStr(u.s[u.meta.QueryStart:u.meta.QueryEnd]), true
}

// HasQuery reports whether the reference has a query component.
func (u *Uri) HasQuery() bool { return u != nil && u.meta.HasQuery }

// Fragment returns the fragment component, when present.
// An empty fragment ("#" with nothing after it) is present and empty.
func (u *Uri) Fragment() (pct.EStr, bool) {
	if u == nil || !u.meta.HasFragment {
		return "", false
	}
	return pct.EStr(u.s[u.meta.FragStart:]), true
}

// HasFragment reports whether the reference has a fragment component.
func (u *Uri) HasFragment() bool { return u != nil && u.meta.HasFragment }

// IsAbsolute reports whether the reference is an absolute URI:
// it has a scheme and no fragment.
func (u *Uri) IsAbsolute() bool {
	return u != nil && u.meta.HasScheme && !u.meta.HasFragment
}

// IsRelativeRef reports whether the reference is a relative reference,
// i.e. it has no scheme.
func (u *Uri) IsRelativeRef() bool { return u == nil || !u.meta.HasScheme }

// RenderTo writes the URI reference to the provided writer, component by
// component.
func (u *Uri) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if u.meta.HasScheme {
		cw.WriteString(u.s[:u.meta.SchemeEnd]) //nolint:errcheck
		cw.WriteString(":")                    //nolint:errcheck
	}
	if u.meta.HasAuthority {
		cw.WriteString("//")                                   //nolint:errcheck
		cw.WriteString(u.s[u.meta.Auth.Start:u.meta.Auth.End]) //nolint:errcheck
	}
	cw.WriteString(u.s[u.meta.PathStart:u.meta.PathEnd]) //nolint:errcheck
	if u.meta.HasQuery {
		cw.WriteString("?")                                    //nolint:errcheck
		cw.WriteString(u.s[u.meta.QueryStart:u.meta.QueryEnd]) //nolint:errcheck
	}
	if u.meta.HasFragment {
		cw.WriteString("#")                    //nolint:errcheck
		cw.WriteString(u.s[u.meta.FragStart:]) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the URI reference exactly as it was parsed or built.
func (u *Uri) String() string {
	if u == nil {
		return ""
	}
	return u.s
}

// Format implements fmt.Formatter for custom formatting of the Uri.
func (u *Uri) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods Uri
		type Uri hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*Uri)(u))
		return
	}
}

// Equal compares this URI reference with another for equality.
// Comparison operates on the raw bytes: two references that differ only in
// percent-encoding hex case or letter case are unequal until normalized.
func (u *Uri) Equal(val any) bool {
	var other *Uri
	switch v := val.(type) {
	case Uri:
		other = &v
	case *Uri:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}
	return u.s == other.s
}

// Clone returns a copy of the Uri.
func (u *Uri) Clone() *Uri {
	if u == nil {
		return nil
	}
	u2 := *u
	return &u2
}

// MarshalText implements [encoding.TextMarshaler].
func (u *Uri) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (u *Uri) UnmarshalText(text []byte) error {
	u1, err := Parse(string(text))
	if err != nil {
		*u = Uri{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}

// Scheme is a URI scheme name. Schemes compare case-insensitively through
// [Scheme.Equal]; comparison with == is case-sensitive.
type Scheme string

// NewScheme validates s as a scheme name.
func NewScheme(s string) (Scheme, error) {
	if !grammar.IsScheme(s) {
		return "", errtrace.Wrap(newParseError(&grammar.Error{Kind: grammar.ErrInvalidScheme, Idx: 0}))
	}
	return Scheme(s), nil
}

// MustScheme is like [NewScheme] but panics on invalid input.
func MustScheme(s string) Scheme {
	return util.Must2(NewScheme(s))
}

// String returns the scheme name in its original letter case.
func (s Scheme) String() string { return string(s) }

// Equal compares scheme names case-insensitively.
func (s Scheme) Equal(other Scheme) bool {
	return util.EqFold(string(s), string(other))
}
