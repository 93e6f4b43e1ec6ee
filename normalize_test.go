package uriref_test

import (
	"testing"

	"github.com/ghettovoice/uriref"
)

func TestUri_Normalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		s    string
		want string
	}{
		{"empty", "", ""},
		{"already normal", "http://example.com/a", "http://example.com/a"},
		{"scheme lowercased", "HTTP://example.com", "http://example.com"},
		{"host lowercased", "http://Example.COM/Path", "http://example.com/Path"},
		{"userinfo case kept", "http://User@EXAMPLE.com", "http://User@example.com"},
		{"triplet hex uppercased", "/%7b%7d", "/%7B%7D"},
		{"unreserved decoded", "/%61%2Db", "/a-b"},
		{"encoded host decoded and lowercased", "//ex%41mple.com", "//example.com"},
		{"dot segments removed", "http://example.com/a/./b/../c", "http://example.com/a/c"},
		{"relative keeps dot segments", "../a/./b", "../a/./b"},
		{"guarded double slash", "s:/a/../..//b", "s:/.//b"},
		{"empty port kept", "http://example.com:/a", "http://example.com:/a"},
		{"query and fragment triplets", "/p?%7b#%7d", "/p?%7B#%7D"},
		{"reserved stays encoded", "/%2Fa", "/%2Fa"},
		{"ipv6 literal lowercased", "//[2001:DB8::1]", "//[2001:db8::1]"},
		{"combined", "eXAMPLE://a/./b/../b/%63/%7bfoo%7d", "example://a/b/c/%7Bfoo%7D"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := uriref.MustParse(c.s).Normalize()
			if got.String() != c.want {
				t.Errorf("u.Normalize() = %q, want %q", got, c.want)
			}
			// idempotence
			if again := got.Normalize(); !got.Equal(again) {
				t.Errorf("got.Normalize() = %q, want %q unchanged", again, got)
			}
		})
	}
}

func TestUri_Normalize_Nil(t *testing.T) {
	t.Parallel()

	if got := (*uriref.Uri)(nil).Normalize(); got != nil {
		t.Errorf("nil.Normalize() = %+v, want nil", got)
	}
}
