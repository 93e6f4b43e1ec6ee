package uriref

import (
	"net/netip"
	"strconv"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/pct"
)

// Authority is a non-owning sub-view of a [Uri] restricted to the authority
// component. The zero Authority is empty and reports no subcomponents.
type Authority struct {
	u *Uri
}

// String returns the authority component as it appears in the reference,
// without the leading "//".
func (a Authority) String() string {
	if a.u == nil {
		return ""
	}
	return a.u.s[a.meta().Start:a.meta().End]
}

func (a Authority) meta() grammar.AuthMeta { return a.u.meta.Auth }

// Userinfo returns the userinfo subcomponent, when present.
func (a Authority) Userinfo() (pct.EStr, bool) {
	if a.u == nil || !a.meta().HasUserinfo {
		return "", false
	}
	return pct.EStr(a.u.s[a.meta().Start : a.meta().HostStart-1]), true
}

// HasUserinfo reports whether the authority contains a userinfo subcomponent.
func (a Authority) HasUserinfo() bool { return a.u != nil && a.meta().HasUserinfo }

// Host returns the host subcomponent as a string. The host is always
// present, although it may be empty. Square brackets enclosing an IPv6 or
// IPvFuture literal are included. The host is case-insensitive.
func (a Authority) Host() string {
	if a.u == nil {
		return ""
	}
	return a.u.s[a.meta().HostStart:a.meta().HostEnd]
}

// HostParsed returns the classified host subcomponent.
func (a Authority) HostParsed() Host {
	h := Host{raw: a.Host()}
	if a.u == nil {
		return h
	}
	hm := a.meta().Host
	switch hm.Kind {
	case grammar.HostIPv4:
		h.kind = HostIPv4
		h.addr = hm.Addr
	case grammar.HostIPv6:
		h.kind = HostIPv6
		h.addr = hm.Addr
	case grammar.HostIPvFuture:
		h.kind = HostIPvFuture
	default:
		h.kind = HostRegName
	}
	return h
}

// Port returns the port subcomponent, when present. The port may be empty,
// have leading zeros or exceed the uint16 range; see [Authority.PortUint16]
// for the numeric conversion.
func (a Authority) Port() (pct.EStr, bool) {
	if a.u == nil || !a.meta().HasPort {
		return "", false
	}
	return pct.EStr(a.u.s[a.meta().HostEnd+1 : a.meta().End]), true
}

// HasPort reports whether the authority contains a port subcomponent,
// which may be empty.
func (a Authority) HasPort() bool { return a.u != nil && a.meta().HasPort }

// PortUint16 converts the port to uint16 when present and non-empty.
// Leading zeros are ignored. It fails with [ErrOverflow] when the value
// exceeds 65535.
func (a Authority) PortUint16() (port uint16, ok bool, err error) {
	p, present := a.Port()
	if !present || p.IsEmpty() {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(p.String(), 10, 16)
	if err != nil {
		return 0, false, errtrace.Wrap(&ParseError{Kind: ErrOverflow, Idx: a.meta().HostEnd + 1})
	}
	return uint16(v), true, nil
}

// HostKind enumerates the host forms of RFC 3986 §3.2.2.
type HostKind uint8

const (
	// HostRegName is a registered (DNS-style) name, possibly empty.
	HostRegName HostKind = iota
	// HostIPv4 is a dotted-quad IPv4 literal.
	HostIPv4
	// HostIPv6 is a bracketed IPv6 literal.
	HostIPv6
	// HostIPvFuture is a bracketed version-tagged future IP literal.
	HostIPvFuture
)

// String returns the kind name.
func (k HostKind) String() string {
	switch k {
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostIPvFuture:
		return "ipvfuture"
	default:
		return "reg-name"
	}
}

// Host is the classified host subcomponent of an authority.
type Host struct {
	kind HostKind
	addr netip.Addr
	raw  string
}

// Kind returns the host form.
func (h Host) Kind() HostKind { return h.kind }

// IP returns the parsed address when the host is an IPv4 or IPv6 literal.
func (h Host) IP() (netip.Addr, bool) {
	if h.kind != HostIPv4 && h.kind != HostIPv6 {
		return netip.Addr{}, false
	}
	return h.addr, true
}

// RegName returns the registered name when the host is one.
func (h Host) RegName() (pct.EStr, bool) {
	if h.kind != HostRegName {
		return "", false
	}
	return pct.EStr(h.raw), true
}

// String returns the host exactly as it appears in the reference,
// including any enclosing brackets.
func (h Host) String() string { return h.raw }
