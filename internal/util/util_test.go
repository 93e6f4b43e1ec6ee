package util_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/uriref/internal/util"
)

type casedString string

func TestCase(t *testing.T) {
	t.Parallel()

	if got := util.UCase(casedString("aBc")); got != "ABC" {
		t.Errorf("util.UCase(aBc) = %q, want ABC", got)
	}
	if got := util.LCase(casedString("AbC")); got != "abc" {
		t.Errorf("util.LCase(AbC) = %q, want abc", got)
	}
	if !util.EqFold("Example.COM", casedString("example.com")) {
		t.Errorf("util.EqFold() = false, want true")
	}
}

func TestMust2(t *testing.T) {
	t.Parallel()

	if got := util.Must2(42, nil); got != 42 {
		t.Errorf("util.Must2(42, nil) = %v, want 42", got)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("util.Must2 with error must panic")
		}
	}()
	util.Must2(0, errors.New("boom"))
}

func TestStringBuilderPool(t *testing.T) {
	t.Parallel()

	sb := util.GetStringBuilder()
	sb.WriteString("abc")
	util.FreeStringBuilder(sb)

	sb = util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	if sb.Len() != 0 {
		t.Errorf("pooled builder not reset: len = %d", sb.Len())
	}
}
