package rendering

import (
	"strings"
	"unicode"
)

// EscapeFilename makes text safe to use as a download file name: path separators, quotes and
// control characters become '_'. Everything else, accents included, is kept.
func EscapeFilename(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch {
		case r == '/', r == '\\', r == '"':
			result.WriteRune('_')
		case unicode.IsControl(r):
			result.WriteRune('_')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
