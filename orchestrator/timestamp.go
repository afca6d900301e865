package orchestrator

import (
	"regexp"
	"strconv"
	"strings"
)

// [[H:]M:]SS with 1-2 digit hours and minutes and exactly two second digits.
var timestampPattern = regexp.MustCompile(`(?:\d{1,2}:)?\d{1,2}:\d{2}`)

// ExtractTimestamp returns the seconds referenced by text when the grammar
// matches exactly once. Zero or several matches are ambiguous and rejected.
func ExtractTimestamp(text string) (int, bool) {
	m := timestampPattern.FindAllString(text, 2)
	if len(m) != 1 {
		return 0, false
	}
	return TimestampSeconds(m[0]), true
}

// TimestampSeconds converts a matched "H:MM:SS" or "M:SS" to seconds. Field
// ranges are not validated.
func TimestampSeconds(ts string) int {
	secs := 0
	for _, field := range strings.Split(ts, ":") {
		n, _ := strconv.Atoi(field)
		secs = secs*60 + n
	}
	return secs
}
