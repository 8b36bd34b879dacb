package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// ellipsis marks a truncated subject.
const ellipsis = "..."

// DisplayWidth returns the visible width of s in terminal columns; wide
// characters such as CJK and most emoji take two columns.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to fit within maxWidth columns, appending "..." when
// it cuts. A non-positive maxWidth disables truncation.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 || DisplayWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(ellipsis) {
		return strings.Repeat(".", maxWidth)
	}
	return runewidth.Truncate(s, maxWidth, ellipsis)
}
