package views

import (
	"html"
	"net/url"
	"strings"

	"github.com/eringen/linkboard/manifest"
)

// cardURL sanitizes a card's link target for use in an href attribute.
// Relative paths and fragments pass through, as do http, https, mailto and
// tel URLs. Anything else (unparseable, scheme-less, or an unsafe scheme
// like javascript:) degrades to the default "#" link — a dead link, never
// a rendering failure.
func cardURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return manifest.DefaultURL
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return manifest.DefaultURL
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return manifest.DefaultURL
	}
}
