// Package query exposes the knowledge graph to callers as typed, injection
// safe operations over the SPARQL endpoint. Each operation has one query
// template and one record type; endpoint failures degrade to empty results
// so enrichment callers never break on a store outage.
package query

import (
	"net/url"
	"strings"
	"unicode"
)

// SanitizeKeyword strips a free-text search term down to an allow-list of
// characters safe to interpolate into a quoted query literal. Everything
// else, including quotes, braces and backslashes, is dropped.
func SanitizeKeyword(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case strings.ContainsRune(" -+#.&/'", r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// ValidURI reports whether s is an absolute http(s) URI that can be embedded
// in angle brackets without escaping tricks.
func ValidURI(s string) bool {
	if strings.ContainsAny(s, "<> \"{}|\\^`") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
