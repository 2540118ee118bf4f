package typeahead

import "strings"

// escapeField neutralizes terminal control bytes in server-provided text.
// Titles, subtitles, URLs, and group labels all pass through here before
// they reach a style: a payload containing ESC sequences must never be able
// to move the cursor, retitle the window, or restyle the screen. Tabs and
// newlines collapse to a single space so one row stays one line.
func escapeField(s string) string {
	if !hasControl(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f):
			// dropped
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			return true
		}
	}
	return false
}
