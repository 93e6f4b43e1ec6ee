package uriref_test

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/ghettovoice/uriref"
)

func TestAuthority_HostParsed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		s        string
		wantKind uriref.HostKind
		wantRaw  string
		wantIP   string
	}{
		{"reg-name", "//example.com", uriref.HostRegName, "example.com", ""},
		{"empty host", "//", uriref.HostRegName, "", ""},
		{"ipv4", "//192.168.0.1:80", uriref.HostIPv4, "192.168.0.1", "192.168.0.1"},
		{"octet overflow is a name", "//999.1.1.1", uriref.HostRegName, "999.1.1.1", ""},
		{"ipv6", "//[2001:db8::1]", uriref.HostIPv6, "[2001:db8::1]", "2001:db8::1"},
		{"ipvfuture", "//[v1.x:y]", uriref.HostIPvFuture, "[v1.x:y]", ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			auth, ok := uriref.MustParse(c.s).Authority()
			if !ok {
				t.Fatalf("u.Authority() present = false, want true")
			}
			h := auth.HostParsed()
			if got := h.Kind(); got != c.wantKind {
				t.Errorf("h.Kind() = %v, want %v", got, c.wantKind)
			}
			if got := h.String(); got != c.wantRaw {
				t.Errorf("h.String() = %q, want %q", got, c.wantRaw)
			}
			ip, ipOK := h.IP()
			if c.wantIP == "" {
				if ipOK {
					t.Errorf("h.IP() = (%v, true), want absent", ip)
				}
			} else if !ipOK || ip != netip.MustParseAddr(c.wantIP) {
				t.Errorf("h.IP() = (%v, %v), want (%v, true)", ip, ipOK, c.wantIP)
			}
			name, nameOK := h.RegName()
			if wantName := c.wantKind == uriref.HostRegName; nameOK != wantName || (nameOK && string(name) != c.wantRaw) {
				t.Errorf("h.RegName() = (%q, %v), want present %v", name, nameOK, wantName)
			}
		})
	}
}

func TestHostKind_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind uriref.HostKind
		want string
	}{
		{uriref.HostRegName, "reg-name"},
		{uriref.HostIPv4, "ipv4"},
		{uriref.HostIPv6, "ipv6"},
		{uriref.HostIPvFuture, "ipvfuture"},
	}

	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("kind.String() = %q, want %q", got, c.want)
		}
	}
}

func TestAuthority_PortUint16(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		s        string
		wantPort uint16
		wantOK   bool
		wantErr  error
	}{
		{"no port", "//example.com", 0, false, nil},
		{"empty port", "//example.com:", 0, false, nil},
		{"regular", "//example.com:8080", 8080, true, nil},
		{"leading zeros", "//example.com:0080", 80, true, nil},
		{"max", "//example.com:65535", 65535, true, nil},
		{"overflow", "//example.com:65536", 0, false, uriref.ErrOverflow},
		{"far overflow", "//example.com:4294967296", 0, false, uriref.ErrOverflow},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			auth, _ := uriref.MustParse(c.s).Authority()
			port, ok, err := auth.PortUint16()
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("auth.PortUint16() error = %v, want %v", err, c.wantErr)
			}
			if port != c.wantPort || ok != c.wantOK {
				t.Errorf("auth.PortUint16() = (%v, %v), want (%v, %v)", port, ok, c.wantPort, c.wantOK)
			}
		})
	}
}

func TestAuthority_Zero(t *testing.T) {
	t.Parallel()

	var a uriref.Authority
	if got := a.String(); got != "" {
		t.Errorf("a.String() = %q, want empty", got)
	}
	if _, ok := a.Userinfo(); ok {
		t.Errorf("a.Userinfo() present = true, want false")
	}
	if got := a.Host(); got != "" {
		t.Errorf("a.Host() = %q, want empty", got)
	}
	if _, ok := a.Port(); ok {
		t.Errorf("a.Port() present = true, want false")
	}
}
