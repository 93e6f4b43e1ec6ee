// Package uriref provides parsing, component access, reference resolution
// and normalization of URI references according to RFC 3986.
//
// # Overview
//
// The package is built around three operations:
//
//   - [Parse]: validates a reference in a single pass and returns a [Uri],
//     a zero-copy view of the input with byte-offset component boundaries.
//     Component accessors return [pct.EStr] values that borrow the parsed
//     bytes, so reading components allocates nothing.
//
//   - [Uri.ResolveAgainst]: resolves a reference against an absolute base
//     URI per RFC 3986 §5, including path merging and dot-segment removal.
//
//   - [Uri.Normalize]: applies the syntax-based normalization of RFC 3986
//     §6.2.2 (case, percent-encoding and path normalization), without any
//     scheme-specific semantics.
//
// Construction goes through [Builder], whose setters delegate to the same
// component grammar checks the parser uses:
//
//	u, err := uriref.NewBuilder().
//	    SetScheme("https").
//	    SetHost("example.com").
//	    SetPath("/search").
//	    SetQuery(pct.Encode("q=go uri", pct.Query)).
//	    Build()
//
// # Components
//
// Component values are [pct.EStr] strings: validated, possibly
// percent-encoded text. Decoding is explicit and lazy:
//
//	u := uriref.MustParse("https://example.com/a%20b?k=v&x=y")
//	u.Path().Decode()       // "/a b"
//	q, _ := u.Query()
//	for kv := range q.Split('&') {
//	    k, v, _ := kv.SplitOnce('=')
//	    // ...
//	}
//
// Absence and emptiness are distinct: "foo://a/?#" has an empty query and
// an empty fragment, while "foo://a/" has neither.
//
// All operations are pure functions over immutable inputs; parsed values
// are safe to share across goroutines without synchronization.
package uriref
