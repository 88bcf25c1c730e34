package rules

import (
	"strings"
)

// MatchURL reports whether the pattern matches the URL. An exact string
// match always wins; otherwise the pattern is interpreted as a glob where
// '*' matches any run of characters within a path segment, '**' matches
// across segments (including scheme and host), and '?' matches a single
// non-slash character. Both interception backends share these semantics
// so rule behavior does not depend on the chosen browser adapter.
func MatchURL(pattern, url string) bool {
	if pattern == "" {
		return false
	}
	if pattern == url {
		return true
	}
	return matchGlob(pattern, url)
}

func matchGlob(p, s string) bool {
	for len(p) > 0 {
		switch {
		case strings.HasPrefix(p, "**"):
			rest := p[2:]
			if rest == "" {
				return true
			}
			for i := 0; ; i++ {
				if matchGlob(rest, s[i:]) {
					return true
				}
				if i >= len(s) {
					return false
				}
			}
		case p[0] == '*':
			rest := p[1:]
			for i := 0; ; i++ {
				if matchGlob(rest, s[i:]) {
					return true
				}
				if i >= len(s) || s[i] == '/' {
					return false
				}
			}
		case p[0] == '?':
			if len(s) == 0 || s[0] == '/' {
				return false
			}
			p, s = p[1:], s[1:]
		default:
			if len(s) == 0 || s[0] != p[0] {
				return false
			}
			p, s = p[1:], s[1:]
		}
	}
	return len(s) == 0
}
