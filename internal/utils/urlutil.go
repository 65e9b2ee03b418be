package utils

import "strings"

// NormalizeURL canonicalizes a website URL for comparison: trims whitespace,
// drops a trailing slash, and lowercases. Scheme and www are kept; domain
// level matching is handled separately by URLDomain.
func NormalizeURL(raw string) string {
	u := strings.TrimSpace(raw)
	u = strings.TrimSuffix(u, "/")
	return strings.ToLower(u)
}

// URLDomain extracts the host part of a URL, without scheme or www prefix.
// Input that does not look like a URL is returned normalized as-is.
func URLDomain(raw string) string {
	u := NormalizeURL(raw)
	if u == "" {
		return ""
	}
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	if i := strings.IndexByte(u, '/'); i >= 0 {
		u = u[:i]
	}
	return u
}
