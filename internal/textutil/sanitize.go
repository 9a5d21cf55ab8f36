package textutil

import (
	"strings"
	"unicode"
)

// SanitizeTerminalText replaces control and invisible formatting runes so
// candidate text cannot inject escape sequences or reorder the line when
// drawn. Tabs become a single space.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, needsSanitizing) < 0 {
		return text
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t', r == '\n', r == '\r':
			return ' '
		case unicode.IsControl(r):
			return '?'
		case unicode.Is(unicode.Cf, r) && r != 0x200D:
			return unicode.ReplacementChar
		default:
			return r
		}
	}, text)
}

func needsSanitizing(r rune) bool {
	if unicode.IsControl(r) {
		return true
	}
	// ZWJ is part of emoji sequences and must survive.
	return r != 0x200D && unicode.Is(unicode.Cf, r)
}

// SanitizePaste prepares clipboard text for a single-line input: line breaks
// are removed and every tab becomes PasteTabWidth spaces.
func SanitizePaste(text string) string {
	if !strings.ContainsAny(text, "\r\n\t") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\r', '\n':
		case '\t':
			b.WriteString(strings.Repeat(" ", PasteTabWidth))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
