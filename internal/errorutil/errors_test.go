package errorutil_test

import (
	"errors"
	"testing"

	"github.com/ghettovoice/uriref/internal/errorutil"
)

const errSentinel errorutil.Error = "sentinel"

type grammarErr struct{}

func (grammarErr) Error() string { return "grammar" }

func (grammarErr) Grammar() bool { return true }

func TestNewWrapperError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []any
		want string
	}{
		{"no args", nil, "sentinel"},
		{"error arg", []any{errors.New("cause")}, "sentinel: cause"},
		{"string arg", []any{"context"}, "sentinel: context"},
		{"format args", []any{"value %q", "x"}, `sentinel: value "x"`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			err := errorutil.NewWrapperError(errSentinel, c.args...)
			if !errors.Is(err, errSentinel) {
				t.Errorf("errors.Is(err, errSentinel) = false, err = %v", err)
			}
			if got := err.Error(); got != c.want {
				t.Errorf("err.Error() = %q, want %q", got, c.want)
			}
		})
	}
}

func TestNewWrapperError_AlreadyWrapped(t *testing.T) {
	t.Parallel()

	inner := errorutil.NewWrapperError(errSentinel, "inner")
	if got := errorutil.NewWrapperError(errSentinel, inner); got != inner { //nolint:errorlint
		t.Errorf("wrapping an already wrapped error must return it unchanged")
	}
}

func TestNewInvalidArgumentError(t *testing.T) {
	t.Parallel()

	err := errorutil.NewInvalidArgumentError()
	if !errors.Is(err, errorutil.ErrInvalidArgument) {
		t.Errorf("errors.Is(err, errorutil.ErrInvalidArgument) = false, err = %v", err)
	}

	err = errorutil.NewInvalidArgumentError(errSentinel)
	if !errors.Is(err, errorutil.ErrInvalidArgument) || !errors.Is(err, errSentinel) {
		t.Errorf("wrapped error must match both sentinels, err = %v", err)
	}
	if got, want := err.Error(), "invalid argument: sentinel"; got != want {
		t.Errorf("err.Error() = %q, want %q", got, want)
	}
}

func TestIsGrammarErr(t *testing.T) {
	t.Parallel()

	if !errorutil.IsGrammarErr(grammarErr{}) {
		t.Errorf("errorutil.IsGrammarErr(grammarErr{}) = false, want true")
	}
	if !errorutil.IsGrammarErr(errorutil.NewWrapperError(errSentinel, grammarErr{})) {
		t.Errorf("errorutil.IsGrammarErr(wrapped) = false, want true")
	}
	if errorutil.IsGrammarErr(errors.New("plain")) {
		t.Errorf("errorutil.IsGrammarErr(plain) = true, want false")
	}
	if errorutil.IsGrammarErr(nil) {
		t.Errorf("errorutil.IsGrammarErr(nil) = true, want false")
	}
}
