package orchestrator

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Anything but Unicode word characters, whitespace and .,!?:;@#'
var disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}\x0B.,!?:;@#']`)

// Normalize canonicalizes comment text for the classifier: prune characters,
// lowercase, collapse runs of 3+ identical characters to one, then replace
// emoji with their :name: tokens.
func Normalize(text string) string {
	text = disallowedChars.ReplaceAllString(text, "")
	text = cases.Lower(language.Und).String(text)
	text = collapseRepeats(text)
	return Demojize(text)
}

// collapseRepeats replaces every run of three or more identical runes with a
// single one. Newlines are never collapsed.
func collapseRepeats(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); {
		j := i + 1
		for j < len(rs) && rs[j] == rs[i] {
			j++
		}
		if j-i >= 3 && rs[i] != '\n' {
			b.WriteRune(rs[i])
		} else {
			b.WriteString(string(rs[i:j]))
		}
		i = j
	}
	return b.String()
}
