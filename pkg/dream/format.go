package dream

import (
	"strings"
	"time"
)

const (
	// DefaultExcerptLength is used when Excerpt is given a non-positive length.
	DefaultExcerptLength = 100

	ellipsis      = "..."
	layoutDisplay = "Mon, Jan 2, 2006"
)

// FormatForDisplay renders t like "Tue, Jan 2, 2024" in local time. The zero
// time renders as an empty string.
func FormatForDisplay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(layoutDisplay)
}

// Excerpt shortens content to its first maxLength runes, appending an
// ellipsis only when something was cut. Trailing whitespace and dots are
// dropped from the kept prefix so an excerpt of an excerpt is unchanged.
func Excerpt(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultExcerptLength
	}
	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}
	return strings.TrimRight(string(runes[:maxLength]), " \t\r\n.") + ellipsis
}
