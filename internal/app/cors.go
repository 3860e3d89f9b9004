package app

import (
	"net/url"
	"strings"
)

// allowedOriginFunc builds the CORS origin check for the configured
// patterns. A pattern is an exact "host[:port]", a "*.domain" suffix
// wildcard, or a "host:*" port wildcard.
func allowedOriginFunc(patterns []string) func(string) bool {
	return func(origin string) bool {
		host := origin
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			host = u.Host
		}
		for _, pattern := range patterns {
			if originMatches(pattern, host) {
				return true
			}
		}
		return false
	}
}

func originMatches(pattern, host string) bool {
	switch {
	case pattern == host:
		return true
	case strings.HasPrefix(pattern, "*."):
		return strings.HasSuffix(host, pattern[1:])
	case strings.HasSuffix(pattern, ":*"):
		return strings.HasPrefix(host, strings.TrimSuffix(pattern, "*"))
	}
	return false
}
