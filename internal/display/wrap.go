package display

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultWidth = 80

// Wrap word-wraps text to DefaultWidth, preserving ANSI escape sequences.
func Wrap(text string) string {
	return wordwrap.String(text, DefaultWidth)
}

// Lines splits text into display lines no wider than width. Authored line
// breaks are kept. There is always at least one line, so an empty text still
// occupies the dialogue box.
func Lines(text string, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}

	wrapped := wordwrap.String(text, width)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// Capitalize returns s with its first character uppercased.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Title upper-cases the first letter of every word. A Caser keeps state, so
// each call gets its own.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}
