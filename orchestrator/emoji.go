package orchestrator

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kyokomi/emoji/v2"
)

const variationSelector16 = "\ufe0f"

var (
	emojiOnce     sync.Once
	emojiNames    map[string]string // sequence without VS16 -> ":name:"
	emojiMaxRunes int

	cleanEmojiName = regexp.MustCompile(`^:[a-z0-9_]+:$`)
)

// betterName ranks alias candidates for one emoji: names made only of
// [a-z0-9_] first, then the longer (more descriptive) one, then lexical.
func betterName(a, b string) bool {
	ca, cb := cleanEmojiName.MatchString(a), cleanEmojiName.MatchString(b)
	if ca != cb {
		return ca
	}
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

func asciiOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func loadEmojiNames() {
	emojiNames = make(map[string]string)
	for name, code := range emoji.CodeMap() {
		key := strings.TrimSpace(strings.ReplaceAll(code, variationSelector16, ""))
		// keycaps and the like reduce to plain text once VS16 is gone
		if key == "" || asciiOnly(key) {
			continue
		}
		if cur, ok := emojiNames[key]; ok && !betterName(name, cur) {
			continue
		}
		emojiNames[key] = name
		if n := utf8.RuneCountInString(key); n > emojiMaxRunes {
			emojiMaxRunes = n
		}
	}
}

// Demojize replaces each emoji sequence in s with its :name: token, longest
// sequence first. Other text is left untouched.
func Demojize(s string) string {
	emojiOnce.Do(loadEmojiNames)
	if asciiOnly(s) {
		return s
	}
	rs := []rune(strings.ReplaceAll(s, variationSelector16, ""))

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); {
		if rs[i] < utf8.RuneSelf {
			b.WriteRune(rs[i])
			i++
			continue
		}
		matched := false
		for n := min(emojiMaxRunes, len(rs)-i); n >= 1; n-- {
			if name, ok := emojiNames[string(rs[i:i+n])]; ok {
				b.WriteString(name)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			b.WriteRune(rs[i])
			i++
		}
	}
	return b.String()
}
