package grammar

import (
	"net/netip"

	"github.com/ghettovoice/uriref/pct"
)

// ClassifyHost determines which host form the substring is and parses IP
// literals into structured values. Classification is deterministic from the
// exact bytes: a bracketed literal is IPv6 or IPvFuture, an exact dotted
// quad is IPv4, everything else falls back to reg-name — the reg-name
// grammar is a superset that accepts whatever the IPv4 grammar rejects
// (e.g. "999.1.1.1").
//
// base is the absolute offset of the host inside the parsed string, used
// for error indices.
func ClassifyHost(host string, base int) (HostMeta, error) {
	if len(host) == 0 {
		return HostMeta{Kind: HostRegName}, nil
	}

	if host[0] == '[' {
		if len(host) < 2 || host[len(host)-1] != ']' {
			return HostMeta{}, newErr(ErrInvalidHost, base)
		}
		inner := host[1 : len(host)-1]
		if len(inner) > 0 && (inner[0] == 'v' || inner[0] == 'V') {
			if !isIPvFuture(inner) {
				return HostMeta{}, newErr(ErrInvalidHost, base)
			}
			return HostMeta{Kind: HostIPvFuture}, nil
		}
		ip, err := netip.ParseAddr(inner)
		// RFC 3986 has no zone IDs; RFC 6874 syntax is out of scope.
		if err != nil || !ip.Is6() || ip.Zone() != "" {
			return HostMeta{}, newErr(ErrInvalidHost, base)
		}
		return HostMeta{Kind: HostIPv6, Addr: ip}, nil
	}

	for i := 0; i < len(host); i++ {
		c := host[i]
		if c == '%' {
			if i+2 >= len(host) || !pct.HexDigit.Allows(host[i+1]) || !pct.HexDigit.Allows(host[i+2]) {
				return HostMeta{}, newErr(ErrInvalidHost, base+i)
			}
			i += 2
			continue
		}
		if !pct.RegName.Allows(c) {
			return HostMeta{}, newErr(ErrInvalidHost, base+i)
		}
	}

	// netip's dotted-quad grammar matches dec-octet exactly: four decimal
	// parts in 0-255 with no extra leading zeros.
	if ip, err := netip.ParseAddr(host); err == nil && ip.Is4() {
		return HostMeta{Kind: HostIPv4, Addr: ip}, nil
	}
	return HostMeta{Kind: HostRegName}, nil
}

// isIPvFuture checks `"v" 1*HEXDIG "." 1*( unreserved / sub-delims / ":" )`
// against the bracket interior, the leading "v" already matched.
func isIPvFuture(s string) bool {
	i := 1
	for i < len(s) && pct.HexDigit.Allows(s[i]) {
		i++
	}
	if i == 1 || i >= len(s) || s[i] != '.' {
		return false
	}
	rest := s[i+1:]
	return len(rest) > 0 && pct.Validate(rest, pct.IPvFuture)
}
