package utils

import "github.com/microcosm-cc/bluemonday"

var (
	ugcSanitizer   = bluemonday.UGCPolicy()
	plainSanitizer = bluemonday.StrictPolicy()
)

// Sanitize cleans user generated HTML, keeping common formatting tags.
func Sanitize(input string) string {
	return ugcSanitizer.Sanitize(input)
}

// SanitizePlain strips all markup, for fields rendered as plain text such as
// names, tags and job titles.
func SanitizePlain(input string) string {
	return plainSanitizer.Sanitize(input)
}
