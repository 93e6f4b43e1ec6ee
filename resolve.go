package uriref

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/uriref/internal/errorutil"
	"github.com/ghettovoice/uriref/internal/grammar"
	"github.com/ghettovoice/uriref/internal/util"
)

// ResolveAgainst resolves the reference against the given base URI per
// RFC 3986 §5 and returns the target as a new, owned Uri. The base must be
// an absolute URI (non-empty scheme); otherwise resolution fails with
// [ErrNotAbsolute].
//
// The fragment of the target always comes from the reference, never from
// the base, and the resulting path has its dot segments removed.
func (u *Uri) ResolveAgainst(base *Uri) (*Uri, error) {
	if u == nil || base == nil || !base.HasScheme() {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(ErrNotAbsolute))
	}

	var (
		scheme   string
		hasAuth  bool
		auth     string
		path     string
		hasQuery bool
		query    string
	)

	refPath := string(u.Path())
	switch {
	case u.meta.HasScheme:
		scheme = u.s[:u.meta.SchemeEnd]
		hasAuth = u.meta.HasAuthority
		auth = authorityOf(u)
		path = grammar.RemoveDotSegments(refPath)
		hasQuery, query = queryOf(u)
	case u.meta.HasAuthority:
		scheme = base.s[:base.meta.SchemeEnd]
		hasAuth = true
		auth = authorityOf(u)
		path = grammar.RemoveDotSegments(refPath)
		hasQuery, query = queryOf(u)
	case refPath == "":
		scheme = base.s[:base.meta.SchemeEnd]
		hasAuth = base.meta.HasAuthority
		auth = authorityOf(base)
		path = string(base.Path())
		if u.meta.HasQuery {
			hasQuery, query = queryOf(u)
		} else {
			hasQuery, query = queryOf(base)
		}
	case refPath[0] == '/':
		scheme = base.s[:base.meta.SchemeEnd]
		hasAuth = base.meta.HasAuthority
		auth = authorityOf(base)
		path = grammar.RemoveDotSegments(refPath)
		hasQuery, query = queryOf(u)
	default:
		scheme = base.s[:base.meta.SchemeEnd]
		hasAuth = base.meta.HasAuthority
		auth = authorityOf(base)
		merged := grammar.MergePaths(string(base.Path()), refPath, base.meta.HasAuthority)
		path = grammar.RemoveDotSegments(merged)
		hasQuery, query = queryOf(u)
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	sb.WriteString(scheme)
	sb.WriteByte(':')
	if hasAuth {
		sb.WriteString("//")
		sb.WriteString(auth)
	} else if strings.HasPrefix(path, "//") {
		// keep a path starting with "//" from re-parsing as an authority
		sb.WriteString("/.")
	}
	sb.WriteString(path)
	if hasQuery {
		sb.WriteByte('?')
		sb.WriteString(query)
	}
	if u.meta.HasFragment {
		sb.WriteByte('#')
		sb.WriteString(u.s[u.meta.FragStart:])
	}
	return errtrace.Wrap2(Parse(sb.String()))
}

func authorityOf(u *Uri) string {
	if !u.meta.HasAuthority {
		return ""
	}
	return u.s[u.meta.Auth.Start:u.meta.Auth.End]
}

func queryOf(u *Uri) (bool, string) {
	if !u.meta.HasQuery {
		return false, ""
	}
	return true, u.s[u.meta.QueryStart:u.meta.QueryEnd]
}
