package forum

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify normalizes a title into a URL slug, truncated so a collision
// counter still fits under the column limit.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "post"
	}
	if len(slug) > 240 {
		slug = strings.Trim(slug[:240], "-")
	}
	return slug
}
