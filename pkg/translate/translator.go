// Package translate swaps display words between English and Swahili using two parallel word lists.
package translate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dukahub/dukaweb/pkg/clog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Translator struct {
	vocab        Vocabulary
	enabled      bool
	englishIndex map[string]int
	swahiliIndex map[string]int
}

// NewTranslator indexes v. Lists of unequal length leave the translator disabled, in which case
// every word comes back unchanged.
func NewTranslator(v Vocabulary) *Translator {
	t := &Translator{vocab: v}

	if len(v.English) != len(v.Swahili) {
		clog.UsingCtx("translate").Warnf("word lists differ in length (english=%d, swahili=%d), translation disabled",
			len(v.English), len(v.Swahili))
		return t
	}

	t.englishIndex = indexWords(v.English)
	t.swahiliIndex = indexWords(v.Swahili)
	t.enabled = true

	return t
}

func indexWords(words []string) map[string]int {
	index := make(map[string]int, len(words))
	for i, w := range words {
		key := normalize(w)
		if _, exists := index[key]; !exists {
			index[key] = i
		}
	}

	return index
}

// Translate rewrites word into lang. A word from the other list becomes its counterpart, a word
// already in lang's list is normalized, anything else is returned untouched. Never panics.
func (t *Translator) Translate(lang Language, word string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			clog.UsingCtx("translate").Errorf("translate %q failed: %v", word, r)
			result = word
		}
	}()

	if t == nil || !t.enabled || strings.TrimSpace(word) == "" {
		return word
	}

	translated, err := t.lookup(lang, normalize(word))
	if err != nil {
		clog.UsingCtx("translate").Errorf("translate %q: %s", word, err)
		return word
	}

	if translated == "" {
		return word
	}

	return capitalizeFirst(translated)
}

// Func binds lang so templates and field renderers can call a plain func(string) string.
func (t *Translator) Func(lang Language) func(string) string {
	return func(word string) string {
		return t.Translate(lang, word)
	}
}

// Preferrer is anything that carries a language preference, such as a session.
type Preferrer interface {
	PreferredLanguage() Language
}

// For translates into p's preferred language.
func (t *Translator) For(p Preferrer) func(string) string {
	return t.Func(p.PreferredLanguage())
}

func (t *Translator) lookup(lang Language, key string) (string, error) {
	to := t.vocab.Swahili
	fromIndex, toIndex := t.englishIndex, t.swahiliIndex
	if lang == English {
		to = t.vocab.English
		fromIndex, toIndex = toIndex, fromIndex
	}

	i, ok := fromIndex[key]
	if !ok {
		if i, ok = toIndex[key]; !ok {
			return "", nil
		}
	}

	if i >= len(to) {
		return "", fmt.Errorf("index %d out of range for %d words", i, len(to))
	}

	return to[i], nil
}

// normalize lower cases, maps underscores to spaces and collapses runs of whitespace.
func normalize(word string) string {
	lowered := cases.Lower(language.Und).String(strings.ReplaceAll(word, "_", " "))
	return strings.Join(strings.Fields(lowered), " ")
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
