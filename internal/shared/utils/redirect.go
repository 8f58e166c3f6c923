package utils

import (
	"net/url"
	"strings"
)

// SafeRedirectPath returns next when it is a same-site absolute path, otherwise fallback.
// Scheme-relative ("//host") and backslash forms are rejected.
func SafeRedirectPath(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" {
		return fallback
	}
	return next
}
