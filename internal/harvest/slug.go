package harvest

import (
	"net/url"
	"strings"
)

// Slugify converts a human-readable title into a URL-safe identifier by
// collapsing whitespace runs into single hyphens. Titles that contain no
// non-whitespace characters fall back to percent-encoding the original string
// so the slug is never empty. The transform is idempotent: applying it to its
// own output returns the output unchanged.
func Slugify(s string) string {
	slug := strings.Join(strings.Fields(s), "-")
	if slug == "" {
		return url.PathEscape(s)
	}
	return slug
}
