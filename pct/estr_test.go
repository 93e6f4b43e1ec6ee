package pct_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/uriref/pct"
)

func TestNewEStr(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		s       string
		tbl     *pct.Table
		wantErr error
	}{
		{"empty", "", pct.Pchar, nil},
		{"plain", "abc", pct.Pchar, nil},
		{"encoded", "%E4%BD%A0%E5%A5%BD", pct.Pchar, nil},
		{"disallowed byte", "a b", pct.Pchar, pct.ErrInvalidText},
		{"truncated triplet", "%4", pct.Pchar, pct.ErrInvalidText},
		{"bad hex", "%zz", pct.Pchar, pct.ErrInvalidText},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := pct.NewEStr(c.s, c.tbl)
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("pct.NewEStr(%q, tbl) error = %v, want %v\ndiff (-got +want):\n%v", c.s, err, c.wantErr, diff)
			}
			if c.wantErr == nil && got.String() != c.s {
				t.Errorf("got.String() = %q, want %q", got, c.s)
			}
		})
	}
}

func TestMustEStr(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Errorf("pct.MustEStr on invalid input must panic")
		}
	}()
	pct.MustEStr("a b", pct.Pchar)
}

func TestEStr_Split(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		s    pct.EStr
		sep  byte
		want []pct.EStr
	}{
		{"empty", "", '&', []pct.EStr{""}},
		{"single", "a=1", '&', []pct.EStr{"a=1"}},
		{"pairs", "a=1&b=2&c=3", '&', []pct.EStr{"a=1", "b=2", "c=3"}},
		{"empty pieces", "&a&&", '&', []pct.EStr{"", "a", "", ""}},
		{"segments", "/a/b", '/', []pct.EStr{"", "a", "b"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got := slices.Collect(c.s.Split(c.sep))
			if diff := cmp.Diff(got, c.want); diff != "" {
				t.Errorf("s.Split(%q) = %v, want %v\ndiff (-got +want):\n%v", c.sep, got, c.want, diff)
			}
		})
	}
}

func TestEStr_SplitOnce(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                  string
		s                     pct.EStr
		sep                   byte
		wantBefore, wantAfter pct.EStr
		wantFound             bool
	}{
		{"found", "user:pass", ':', "user", "pass", true},
		{"first wins", "a=1=2", '=', "a", "1=2", true},
		{"missing", "user", ':', "user", "", false},
		{"empty", "", ':', "", "", false},
		{"leading sep", ":pass", ':', "", "pass", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			before, after, found := c.s.SplitOnce(c.sep)
			if before != c.wantBefore || after != c.wantAfter || found != c.wantFound {
				t.Errorf("s.SplitOnce(%q) = (%q, %q, %v), want (%q, %q, %v)",
					c.sep, before, after, found, c.wantBefore, c.wantAfter, c.wantFound)
			}
		})
	}
}

func TestEStr_DecodeString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		s       pct.EStr
		want    string
		wantErr error
	}{
		{"empty", "", "", nil},
		{"plain", "abc", "abc", nil},
		{"space", "a%20b", "a b", nil},
		{"utf8", "%E4%BD%A0%E5%A5%BD", "你好", nil},
		{"lowercase hex", "%e4%bd%a0", "你", nil},
		{"lone continuation byte", "%80", "", pct.ErrInvalidUTF8},
		{"truncated rune", "%E4%BD", "", pct.ErrInvalidUTF8},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.s.DecodeString()
			if diff := cmp.Diff(err, c.wantErr, cmpopts.EquateErrors()); diff != "" {
				t.Fatalf("s.DecodeString() error = %v, want %v\ndiff (-got +want):\n%v", err, c.wantErr, diff)
			}
			if got != c.want {
				t.Errorf("s.DecodeString() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestEStr_DecodeLossy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		s    pct.EStr
		want string
	}{
		{"plain", "abc", "abc"},
		{"valid utf8", "%E4%BD%A0", "你"},
		{"invalid byte replaced", "a%80b", "a�b"},
		{"truncated rune replaced", "%E4%BDx", "�x"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := c.s.DecodeLossy(); got != c.want {
				t.Errorf("s.DecodeLossy() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestEStr_Decode(t *testing.T) {
	t.Parallel()

	s := pct.MustEStr("a%00%FFz", pct.Pchar)
	if got, want := s.Decode(), []byte{'a', 0, 0xFF, 'z'}; !slices.Equal(got, want) {
		t.Errorf("s.Decode() = %v, want %v", got, want)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		src  string
		tbl  *pct.Table
		want pct.EStr
	}{
		{"empty", "", pct.Data, ""},
		{"unreserved kept", "a-b.c_d~e", pct.Data, "a-b.c_d~e"},
		{"space", "a b", pct.Data, "a%20b"},
		{"utf8", "你", pct.Data, "%E4%BD%A0"},
		{"percent always encoded", "100%", pct.Data, "100%25"},
		{"query data", "k=v&x", pct.Data, "k%3Dv%26x"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := pct.Encode(c.src, c.tbl); got != c.want {
				t.Errorf("pct.Encode(%q, tbl) = %q, want %q", c.src, got, c.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		s    string
		want string
	}{
		{"plain", "abc", "abc"},
		{"triplet", "a%20b", "a b"},
		{"malformed passes through", "a%2xb%4", "a%2xb%4"},
		{"trailing percent", "a%", "a%"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			if got := string(pct.Decode(c.s)); got != c.want {
				t.Errorf("pct.Decode(%q) = %q, want %q", c.s, got, c.want)
			}
		})
	}
}
