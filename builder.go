package uriref

import (
	"net/netip"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/util"
	"github.com/ghettovoice/uriref/pct"
)

// Builder incrementally composes a URI reference from validated components.
// Each setter validates its value against the component grammar and latches
// the first error; Build reports it. The zero Builder produces the empty
// relative reference.
//
// Builder is a thin collaborator over the core grammar checks: it is
// responsible for ordering and cross-component constraints only, and the
// assembled string is re-validated by parsing.
type Builder struct {
	scheme      string
	hasScheme   bool
	userinfo    pct.EStr
	hasUserinfo bool
	host        string
	hasHost     bool
	port        string
	hasPort     bool
	path        pct.EStr
	query       pct.EStr
	hasQuery    bool
	fragment    pct.EStr
	hasFragment bool
	err         error
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// SetScheme sets the scheme component.
func (b *Builder) SetScheme(s string) *Builder {
	if b.err != nil {
		return b
	}
	if !grammar.IsScheme(s) {
		b.err = errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidScheme, "%q", s))
		return b
	}
	b.scheme = s
	b.hasScheme = true
	return b
}

// SetUserinfo sets the userinfo subcomponent. Setting userinfo requires a
// host to be set before Build.
func (b *Builder) SetUserinfo(s pct.EStr) *Builder {
	if b.err != nil {
		return b
	}
	if !grammar.IsUserinfo(string(s)) {
		b.err = errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidAuthority, "userinfo %q", s))
		return b
	}
	b.userinfo = s
	b.hasUserinfo = true
	return b
}

// SetHost sets the host subcomponent and thereby the presence of the
// authority. The host may be a registered name, a dotted-quad IPv4 address
// or a bracketed IP literal; it may be empty.
func (b *Builder) SetHost(host string) *Builder {
	if b.err != nil {
		return b
	}
	if !grammar.IsHost(host) {
		b.err = errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidHost, "%q", host))
		return b
	}
	b.host = host
	b.hasHost = true
	return b
}

// SetHostIP sets the host from a parsed IP address, bracketing IPv6
// literals. Zoned addresses are rejected: RFC 3986 has no zone syntax.
func (b *Builder) SetHostIP(addr netip.Addr) *Builder {
	if b.err != nil {
		return b
	}
	if !addr.IsValid() || addr.Zone() != "" {
		b.err = errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidHost, "ip %v", addr))
		return b
	}
	if addr.Is6() {
		b.host = "[" + addr.String() + "]"
	} else {
		b.host = addr.String()
	}
	b.hasHost = true
	return b
}

// SetPort sets the port subcomponent from a numeric value.
func (b *Builder) SetPort(port uint16) *Builder {
	if b.err != nil {
		return b
	}
	b.port = strconv.Itoa(int(port))
	b.hasPort = true
	return b
}

// SetPortString sets the port subcomponent from its textual form, which may
// be empty or carry leading zeros.
func (b *Builder) SetPortString(s string) *Builder {
	if b.err != nil {
		return b
	}
	if !grammar.IsPort(s) {
		b.err = errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidPort, "%q", s))
		return b
	}
	b.port = s
	b.hasPort = true
	return b
}

// SetPath sets the path component. Structural constraints that depend on
// other components are checked in Build.
func (b *Builder) SetPath(s pct.EStr) *Builder {
	if b.err != nil {
		return b
	}
	if !pct.Validate(string(s), pct.Path) {
		b.err = errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidPath, "%q", s))
		return b
	}
	b.path = s
	return b
}

// SetQuery sets the query component.
func (b *Builder) SetQuery(s pct.EStr) *Builder {
	if b.err != nil {
		return b
	}
	if !grammar.IsQuery(string(s)) {
		b.err = errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidCharacter, "query %q", s))
		return b
	}
	b.query = s
	b.hasQuery = true
	return b
}

// SetFragment sets the fragment component.
func (b *Builder) SetFragment(s pct.EStr) *Builder {
	if b.err != nil {
		return b
	}
	if !grammar.IsFragment(string(s)) {
		b.err = errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidCharacter, "fragment %q", s))
		return b
	}
	b.fragment = s
	b.hasFragment = true
	return b
}

// Build validates cross-component constraints, assembles the reference and
// re-validates it by parsing.
func (b *Builder) Build() (*Uri, error) {
	if b.err != nil {
		return nil, errtrace.Wrap(b.err)
	}
	if (b.hasUserinfo || b.hasPort) && !b.hasHost {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(
			errorutil.NewWrapperError(grammar.ErrInvalidAuthority, "userinfo or port without host")))
	}
	path := string(b.path)
	switch {
	case b.hasHost && path != "" && path[0] != '/':
		return nil, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidPath, "authority requires a rooted or empty path, got %q", path))
	case !b.hasHost && strings.HasPrefix(path, "//"):
		return nil, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidPath, "path %q would parse as an authority", path))
	case !b.hasHost && !b.hasScheme && !grammar.IsPathNoAuthority(path, false):
		return nil, errtrace.Wrap(errorutil.NewWrapperError(grammar.ErrInvalidPath, "%q", path))
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if b.hasScheme {
		sb.WriteString(b.scheme)
		sb.WriteByte(':')
	}
	if b.hasHost {
		sb.WriteString("//")
		if b.hasUserinfo {
			sb.WriteString(string(b.userinfo))
			sb.WriteByte('@')
		}
		sb.WriteString(b.host)
		if b.hasPort {
			sb.WriteByte(':')
			sb.WriteString(b.port)
		}
	}
	sb.WriteString(path)
	if b.hasQuery {
		sb.WriteByte('?')
		sb.WriteString(string(b.query))
	}
	if b.hasFragment {
		sb.WriteByte('#')
		sb.WriteString(string(b.fragment))
	}
	return errtrace.Wrap2(Parse(sb.String()))
}
