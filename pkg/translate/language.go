package translate

import "strings"

type Language string

const (
	English Language = "english"
	Swahili Language = "swahili"
)

// ParseLanguage falls back to English for anything it doesn't recognize.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "swahili", "sw", "kiswahili":
		return Swahili
	default:
		return English
	}
}

// Known reports whether s names a language rather than falling back to English.
func Known(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english", "en", "swahili", "sw", "kiswahili":
		return true
	default:
		return false
	}
}

// Other returns the opposite language.
func (l Language) Other() Language {
	if l == Swahili {
		return English
	}

	return Swahili
}
