package uriref

import (
	"strings"

	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/util"
	"github.com/ghettovoice/uriref/pct"
)

// Normalize applies the syntax-based normalization of RFC 3986 §6.2.2 and
// returns the result as a new, owned Uri. It never fails and is idempotent.
//
// In order: the scheme and the host are lowercased (userinfo, path, query
// and fragment text keep their case); every percent triplet gets uppercase
// hex digits, and triplets encoding an unreserved byte are decoded to the
// literal byte; dot segments are removed from the path when the reference
// has a scheme (a relative reference keeps them, since they are meaningful
// for later resolution). An empty port (":" with no digits) is preserved:
// default-port elision is scheme-specific knowledge and out of scope of
// syntax-based normalization.
func (u *Uri) Normalize() *Uri {
	if u == nil {
		return nil
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if u.meta.HasScheme {
		sb.WriteString(util.LCase(u.s[:u.meta.SchemeEnd]))
		sb.WriteByte(':')
	}
	if u.meta.HasAuthority {
		sb.WriteString("//")
		am := u.meta.Auth
		if am.HasUserinfo {
			writePctNormalized(sb, u.s[am.Start:am.HostStart-1], false)
			sb.WriteByte('@')
		}
		host := u.s[am.HostStart:am.HostEnd]
		if am.Host.Kind == grammar.HostRegName {
			writePctNormalized(sb, host, true)
		} else {
			sb.WriteString(util.LCase(host))
		}
		if am.HasPort {
			sb.WriteByte(':')
			sb.WriteString(u.s[am.HostEnd+1 : am.End])
		}
	}

	path := pctNormalize(string(u.Path()))
	if u.meta.HasScheme {
		path = grammar.RemoveDotSegments(path)
	}
	if !u.meta.HasAuthority && strings.HasPrefix(path, "//") {
		sb.WriteString("/.")
	}
	sb.WriteString(path)

	if u.meta.HasQuery {
		sb.WriteByte('?')
		writePctNormalized(sb, u.s[u.meta.QueryStart:u.meta.QueryEnd], false)
	}
	if u.meta.HasFragment {
		sb.WriteByte('#')
		writePctNormalized(sb, u.s[u.meta.FragStart:], false)
	}
	return util.Must2(Parse(sb.String()))
}

func pctNormalize(s string) string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	writePctNormalized(sb, s, false)
	return sb.String()
}

// writePctNormalized writes s with percent-triplet hex uppercased and
// unreserved octets decoded; lower additionally lowercases the output,
// which suits the case-insensitive host.
func writePctNormalized(sb *strings.Builder, s string, lower bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' {
			b := hexval(s[i+1])<<4 | hexval(s[i+2])
			if pct.Unreserved.Allows(b) {
				if lower {
					b = lcByte(b)
				}
				sb.WriteByte(b)
			} else {
				sb.WriteByte('%')
				sb.WriteByte(ucHex(s[i+1]))
				sb.WriteByte(ucHex(s[i+2]))
			}
			i += 2
			continue
		}
		if lower {
			c = lcByte(c)
		}
		sb.WriteByte(c)
	}
}

func hexval(c byte) byte {
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

func lcByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

func ucHex(c byte) byte {
	if 'a' <= c && c <= 'f' {
		return c - ('a' - 'A')
	}
	return c
}
