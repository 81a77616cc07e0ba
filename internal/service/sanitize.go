package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// plainText strips every tag from user supplied free text.
var plainText = bluemonday.StrictPolicy()

// sanitizeText returns s without markup. The policy escapes what it keeps,
// so entities are decoded back to the characters the user typed.
func sanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}
