package areena

import "strings"

// ExtractToken returns the substring of s after the first "token=" marker,
// verbatim. The token is a server-signed JWT naming the query; it is never
// decoded or validated here. Extraction is best effort and never fails:
// when the marker is absent whatever suffix exists (possibly empty) comes
// back, and callers treat a useless token as "no further pagination
// possible" rather than an error.
func ExtractToken(s string) string {
	return extractSuffix("token=", s)
}

// extractSuffix returns the part of s following the first occurrence of word.
func extractSuffix(word, s string) string {
	start := strings.Index(s, word) + len(word)
	if start > len(s) {
		start = len(s)
	}
	return s[start:]
}
