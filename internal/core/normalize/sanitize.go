package normalize

import (
	"strings"
	"unicode/utf8"
)

// dropped reports runes no later stage wants. Invalid bytes arrive here as
// utf8.RuneError, so a literal U+FFFD goes with them.
func dropped(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7F:
		return true
	case r >= 0x80 && r <= 0x9F:
		return true
	}
	return r == utf8.RuneError
}

// Sanitize strips C0/C1 controls (keeping newline, CR and tab), DEL and
// invalid UTF-8. Clean input is returned as is.
func Sanitize(s string) string {
	if strings.IndexFunc(s, dropped) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if dropped(r) {
			return -1
		}
		return r
	}, s)
}
