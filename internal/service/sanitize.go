package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// maxDecodeRounds bounds how many layers of entity encoding cleanText peels.
const maxDecodeRounds = 4

// cleanText strips markup from a free-text field and trims it. Entity-encoded
// markup is decoded and stripped too, so the stored plain text never carries a
// tag that the sanitizer did not see.
func cleanText(value string) string {
	for i := 0; i < maxDecodeRounds; i++ {
		next := html.UnescapeString(textPolicy.Sanitize(value))
		if next == value {
			return strings.TrimSpace(value)
		}
		value = next
	}
	// Still changing: keep the escaped form rather than decode again.
	return strings.TrimSpace(textPolicy.Sanitize(value))
}

// cleanRequired cleans value and fails when nothing but markup was supplied.
func cleanRequired(value string) (string, error) {
	cleaned := cleanText(value)
	if cleaned == "" {
		return "", ErrInvalidText
	}
	return cleaned, nil
}
