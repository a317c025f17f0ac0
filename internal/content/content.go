// Package content derives presentation fields from raw article bodies.
package content

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	excerptLimit     = 150
	placeholderImage = "/images/placeholder.jpg"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	spaceExpr   = regexp.MustCompile(`\s+`)
	imgExpr     = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)
)

// Excerpt strips markup from body and returns the first 150 characters with
// an ellipsis suffix. Result never exceeds 153 characters.
func Excerpt(body string) string {
	text := html.UnescapeString(stripPolicy.Sanitize(body))
	text = strings.TrimSpace(spaceExpr.ReplaceAllString(text, " "))

	runes := []rune(text)
	if len(runes) > excerptLimit {
		runes = runes[:excerptLimit]
	}

	return strings.TrimSpace(string(runes)) + "..."
}

// CoverImage returns the src of the first embedded image in body, or the
// site placeholder when the body carries none.
func CoverImage(body string) string {
	match := imgExpr.FindStringSubmatch(body)
	if len(match) < 2 {
		return placeholderImage
	}
	return match[1]
}
