package orchestrator

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"soooo good!!!", "so good!"},
		{"good", "good"},
		{"too", "too"},
		{"GREAT Moment At 1:23!!", "great moment at 1:23!!"},
		{"hello, (world) $5 #1 @me it's", "hello, world 5 #1 @me it's"},
		{"Привет!!! Это КРУТО", "привет! это круто"},
		{"wow 😂😂 ok", "wow  ok"},
		{"a\n\n\nb", "a\n\n\nb"},
		{"zzz_zzz", "z_z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"soooo good!!! 1:23",
		"ЛОЛ!!! 0:45 ахахааа",
		"wait... what?? @user #tag",
		"mixed   spaces\tand\ttabs",
		"aaabbbccc",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestCollapseRepeats(t *testing.T) {
	assert.Equal(t, "a", collapseRepeats("aaa"))
	assert.Equal(t, "aa", collapseRepeats("aa"))
	assert.Equal(t, "aba", collapseRepeats("aaabaaaa"))
	assert.Equal(t, "ж", collapseRepeats("жжжж"))
	assert.Equal(t, "", collapseRepeats(""))
}

var emojiToken = regexp.MustCompile(`^:[a-z0-9_]+:$`)

func TestDemojize(t *testing.T) {
	got := Demojize("😂")
	assert.Regexp(t, emojiToken, got)
	assert.Contains(t, got, "joy")

	// VS16 is ignored
	assert.Equal(t, Demojize("❤"), Demojize("❤️"))

	assert.Equal(t, "plain text 1:23", Demojize("plain text 1:23"))
	assert.Equal(t, "привет", Demojize("привет"))
}

func TestNormalizeTextualizesSurvivingEmoji(t *testing.T) {
	// U+2139 is a letter, so it survives pruning and is named afterwards
	got := Normalize("ℹ")
	assert.Regexp(t, emojiToken, got)
	assert.NotContains(t, got, "ℹ")
}
