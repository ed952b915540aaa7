package usd

import (
	"strings"
)

const pathDelimiter = "/"

// splitPath validates an absolute prim path and returns its parent path and
// leaf name. The parent of a root prim is "/".
func splitPath(path string) (parent string, name string, err error) {
	if !strings.HasPrefix(path, pathDelimiter) {
		return "", "", &PathError{Path: path, Reason: "must be absolute"}
	}
	if path == pathDelimiter {
		return "", "", &PathError{Path: path, Reason: "the pseudo-root cannot be defined"}
	}
	segments := strings.Split(path[1:], pathDelimiter)
	for _, s := range segments {
		if s == "" {
			return "", "", &PathError{Path: path, Reason: "empty path segment"}
		}
		if !isIdentifier(s) {
			return "", "", &PathError{Path: path, Reason: "segment " + s + " is not an identifier"}
		}
	}
	name = segments[len(segments)-1]
	parent = pathDelimiter + strings.Join(segments[:len(segments)-1], pathDelimiter)
	return parent, name, nil
}

// isIdentifier matches [A-Za-z_][A-Za-z0-9_]*.
func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return len(s) > 0
}
