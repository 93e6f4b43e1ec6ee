package grammar

import (
	"bytes"
	"strings"
)

// RemoveDotSegments interprets and removes "." and ".." segments from a
// path per RFC 3986 §5.2.4. A ".." segment pops the last completed output
// segment and a leading '/' is never removed, so the result cannot escape
// the root.
func RemoveDotSegments(p string) string {
	if !strings.Contains(p, ".") {
		return p
	}

	out := make([]byte, 0, len(p))
	for len(p) > 0 {
		switch {
		case strings.HasPrefix(p, "../"):
			p = p[3:]
		case strings.HasPrefix(p, "./"):
			p = p[2:]
		case strings.HasPrefix(p, "/./"):
			p = p[2:]
		case p == "/.":
			p = "/"
		case strings.HasPrefix(p, "/../"):
			p = p[3:]
			out = popSegment(out)
		case p == "/..":
			p = "/"
			out = popSegment(out)
		case p == "." || p == "..":
			p = ""
		default:
			// move the first segment, including its leading '/', to output
			i := 0
			if p[0] == '/' {
				i = 1
			}
			for i < len(p) && p[i] != '/' {
				i++
			}
			out = append(out, p[:i]...)
			p = p[i:]
		}
	}
	return string(out)
}

func popSegment(out []byte) []byte {
	if i := bytes.LastIndexByte(out, '/'); i >= 0 {
		return out[:i]
	}
	return out[:0]
}

// MergePaths implements the path merge of RFC 3986 §5.2.3: the reference
// path replaces the last segment of the base path, or is rooted when the
// base has an authority and an empty path.
func MergePaths(basePath, refPath string, baseHasAuthority bool) string {
	if baseHasAuthority && basePath == "" {
		return "/" + refPath
	}
	if i := strings.LastIndexByte(basePath, '/'); i >= 0 {
		return basePath[:i+1] + refPath
	}
	return refPath
}
