package grammar

import (
	"net/netip"
	"strings"

	"github.com/ghettovoice/uriref/pct"
)

// HostKind enumerates the host forms of RFC 3986 §3.2.2.
type HostKind uint8

const (
	HostRegName HostKind = iota
	HostIPv4
	HostIPv6
	HostIPvFuture
)

// HostMeta is the classification result for an authority's host subcomponent.
type HostMeta struct {
	Kind HostKind
	Addr netip.Addr // set when Kind is HostIPv4 or HostIPv6
}

// AuthMeta holds byte-offset boundaries of the authority component and its
// subcomponents. All ranges are half-open and index the parsed string.
type AuthMeta struct {
	Start, End         int
	HostStart, HostEnd int
	HasUserinfo        bool // userinfo = s[Start : HostStart-1]
	HasPort            bool // port = s[HostEnd+1 : End]
	Host               HostMeta
}

// Meta is the offset table produced by one parse. Component absence is
// distinct from an empty present component; the path is always present,
// possibly empty.
type Meta struct {
	HasScheme          bool
	SchemeEnd          int // offset of the ':' terminating the scheme
	HasAuthority       bool
	Auth               AuthMeta
	PathStart, PathEnd int
	HasQuery           bool
	QueryStart         int // content start, after '?'
	QueryEnd           int
	HasFragment        bool
	FragStart          int // content start, after '#'; content ends at len(s)
}

// Parse validates s against the URI-reference grammar of RFC 3986 and
// returns the component offset table. It walks the input once, left to
// right; validation is total, so a failing parse yields only an error.
func Parse(s string) (Meta, error) {
	var m Meta
	pos := 0

	// scheme ":" prefix: scan the initial run of scheme-allowed bytes and
	// commit only when it is terminated by ':'.
	i := 0
	for i < len(s) && pct.Scheme.Allows(s[i]) {
		i++
	}
	if i < len(s) && s[i] == ':' {
		if i == 0 || !pct.Alpha.Allows(s[0]) {
			return Meta{}, newErr(ErrInvalidScheme, 0)
		}
		m.HasScheme = true
		m.SchemeEnd = i
		pos = i + 1
	}

	// "//" authority
	if pos+1 < len(s) && s[pos] == '/' && s[pos+1] == '/' {
		m.HasAuthority = true
		aStart := pos + 2
		aEnd := aStart
		for aEnd < len(s) && s[aEnd] != '/' && s[aEnd] != '?' && s[aEnd] != '#' {
			aEnd++
		}
		am, err := parseAuthority(s, aStart, aEnd)
		if err != nil {
			return Meta{}, err
		}
		m.Auth = am
		pos = aEnd
	}

	// path, up to '?', '#' or end
	pEnd := pos
	for pEnd < len(s) && s[pEnd] != '?' && s[pEnd] != '#' {
		pEnd++
	}
	pathErr := validateRun(s, pos, pEnd, pct.Path, ErrInvalidCharacter)
	if !m.HasAuthority && !m.HasScheme {
		// path-noscheme: the first segment must not contain ':'. The
		// leftmost violation wins, whichever rule it breaks.
		for i := pos; i < pEnd && s[i] != '/'; i++ {
			if s[i] == ':' {
				if ve, ok := pathErr.(*Error); !ok || i < ve.Idx {
					pathErr = newErr(ErrInvalidPath, i)
				}
				break
			}
		}
	}
	if pathErr != nil {
		return Meta{}, pathErr
	}
	m.PathStart, m.PathEnd = pos, pEnd
	pos = pEnd

	// "?" query
	if pos < len(s) && s[pos] == '?' {
		qEnd := pos + 1
		for qEnd < len(s) && s[qEnd] != '#' {
			qEnd++
		}
		if err := validateRun(s, pos+1, qEnd, pct.Query, ErrInvalidCharacter); err != nil {
			return Meta{}, err
		}
		m.HasQuery = true
		m.QueryStart, m.QueryEnd = pos+1, qEnd
		pos = qEnd
	}

	// "#" fragment
	if pos < len(s) && s[pos] == '#' {
		if err := validateRun(s, pos+1, len(s), pct.Fragment, ErrInvalidCharacter); err != nil {
			return Meta{}, err
		}
		m.HasFragment = true
		m.FragStart = pos + 1
	}
	return m, nil
}

func parseAuthority(s string, start, end int) (AuthMeta, error) {
	am := AuthMeta{Start: start, End: end}

	hStart := start
	// userinfo can contain neither '@' nor anything the host may, so the
	// first '@' inside the authority is the delimiter.
	if at := strings.IndexByte(s[start:end], '@'); at >= 0 {
		uiEnd := start + at
		if err := validateRun(s, start, uiEnd, pct.Userinfo, ErrInvalidCharacter); err != nil {
			return AuthMeta{}, err
		}
		am.HasUserinfo = true
		hStart = uiEnd + 1
	}

	hEnd := end
	if hStart < end && s[hStart] == '[' {
		rb := strings.IndexByte(s[hStart:end], ']')
		if rb < 0 {
			if end == len(s) {
				return AuthMeta{}, newErr(ErrUnexpectedEnd, end)
			}
			return AuthMeta{}, newErr(ErrInvalidHost, hStart)
		}
		hEnd = hStart + rb + 1
		if hEnd < end && s[hEnd] != ':' {
			return AuthMeta{}, newErr(ErrInvalidHost, hEnd)
		}
	} else if c := strings.IndexByte(s[hStart:end], ':'); c >= 0 {
		hEnd = hStart + c
	}
	am.HostStart, am.HostEnd = hStart, hEnd

	if hEnd < end { // s[hEnd] == ':'
		am.HasPort = true
		for i := hEnd + 1; i < end; i++ {
			if !pct.Digit.Allows(s[i]) {
				return AuthMeta{}, newErr(ErrInvalidPort, i)
			}
		}
	}

	hm, err := ClassifyHost(s[hStart:hEnd], hStart)
	if err != nil {
		return AuthMeta{}, err
	}
	am.Host = hm
	return am, nil
}

// validateRun checks s[start:end] against the table, verifying percent
// triplets when the table allows encoded octets. The reported index is the
// offending byte, or the '%' of a malformed triplet.
func validateRun(s string, start, end int, t *pct.Table, kind error) error {
	for i := start; i < end; i++ {
		c := s[i]
		if c == '%' && t.AllowsEncoded() {
			if i+2 >= len(s) {
				return newErr(ErrUnexpectedEnd, i)
			}
			if i+2 >= end || !pct.HexDigit.Allows(s[i+1]) || !pct.HexDigit.Allows(s[i+2]) {
				return newErr(kind, i)
			}
			i += 2
			continue
		}
		if !t.Allows(c) {
			return newErr(kind, i)
		}
	}
	return nil
}
