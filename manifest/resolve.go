package manifest

import "strings"

// PageKey derives the manifest page-key from the full URL of the page
// embedding the widget. The key is the path segment immediately after the
// authority: the empty string for the site root, otherwise the literal
// first segment. Nested paths collapse to their first segment, so
// /engineering/some-post and /engineering select the same slice (flat site
// taxonomy).
//
// A URL that splits into fewer than four "/"-separated elements carries no
// key; ok is false and the subsequent manifest lookup will miss.
func PageKey(rawURL string) (key string, ok bool) {
	parts := strings.Split(rawURL, "/")
	if len(parts) < 4 {
		return "", false
	}
	return parts[3], true
}
