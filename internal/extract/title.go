package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Keycap-emoji digits the bot uses as list ordinals: "1️⃣" is a digit rune
// followed by a variation selector and the combining keycap, "🔟" is ten.
const (
	runeVariationSelector = '️'
	runeCombiningKeycap   = '⃣'
	runeKeycapTen         = '\U0001F51F'
)

// CleanTitle strips list decoration from a candidate title: markdown bold,
// surrounding brackets, a leading ordinal or number-emoji prefix, and a
// trailing stray "+" marker. Returns "" when nothing real remains.
func CleanTitle(raw string) string {
	t := strings.TrimSpace(raw)
	t = strings.Trim(t, "*")
	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "+")
	t = strings.TrimSpace(t)
	t = stripOrdinalPrefix(t)
	t = strings.TrimSpace(t)
	t = strings.Trim(t, "[]")
	return strings.TrimSpace(t)
}

// ValidTitle rejects titles that are list markers rather than names: empty,
// shorter than two characters, or digits/number-emoji only.
func ValidTitle(cleaned string) bool {
	if cleaned == "" || utf8.RuneCountInString(cleaned) < 2 {
		return false
	}
	return !numericOnly(cleaned)
}

// HasOrdinalPrefix reports whether the line starts with a list ordinal,
// either plain ("1.", "2)") or a keycap emoji.
func HasOrdinalPrefix(line string) bool {
	line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "*"))
	r, _ := utf8.DecodeRuneInString(line)
	return unicode.IsDigit(r) || r == runeKeycapTen
}

func stripOrdinalPrefix(s string) string {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.IsDigit(r) || r == runeVariationSelector || r == runeCombiningKeycap ||
			r == runeKeycapTen || r == '.' || r == ')' || r == ' ' {
			i += size
			continue
		}
		break
	}
	return s[i:]
}

// numericOnly reports whether the title consists solely of digits,
// number-emoji characters, and ordinal punctuation.
func numericOnly(s string) bool {
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
		case r == runeVariationSelector || r == runeCombiningKeycap || r == runeKeycapTen:
		case r == '.' || r == ')' || r == ' ':
		default:
			return false
		}
	}
	return true
}
