package app

import "testing"

func TestAllowedOriginFunc(t *testing.T) {
	allow := allowedOriginFunc([]string{
		"binmap.app",
		"*.binmap.app",
		"localhost:*",
	})

	for origin, want := range map[string]bool{
		"https://binmap.app":       true,
		"https://admin.binmap.app": true,
		"http://localhost:3000":    true,
		"https://evil.example.com": false,
		"https://binmap.app.evil":  false,
		// Bare hosts (no scheme) are matched as-is.
		"binmap.app": true,
	} {
		if got := allow(origin); got != want {
			t.Errorf("origin %q: got %v, want %v", origin, got, want)
		}
	}
}

func TestOriginMatches(t *testing.T) {
	if !originMatches("*.binmap.app", "api.binmap.app") {
		t.Error("suffix wildcard did not match subdomain")
	}
	if originMatches("*.binmap.app", "binmap.app") {
		t.Error("suffix wildcard matched the apex domain")
	}
	if !originMatches("localhost:*", "localhost:8000") {
		t.Error("port wildcard did not match")
	}
	if originMatches("localhost:*", "localhost.evil:8000") {
		t.Error("port wildcard matched a different host")
	}
}
