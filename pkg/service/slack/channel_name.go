package slack

import (
	"strings"
	"unicode"
)

// maxChannelNameLength is the Slack limit for channel names
const maxChannelNameLength = 80

// NormalizeChannelName converts a configured channel name into the form Slack
// accepts: lowercase, spaces as hyphens, no punctuation other than '-' and '_'.
// Non-ASCII letters are kept.
func NormalizeChannelName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "-")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		case r > 127 && !isProhibitedSymbol(r):
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(out) > maxChannelNameLength {
		out = strings.TrimRight(truncateToMaxBytes(out, maxChannelNameLength), "-")
	}
	return out
}

var prohibitedRunes = []rune{
	'。', '、', '！', '？', '／', '＼', '．', '，', '＠', '＃', '（', '）', '「', '」',
}

func isProhibitedSymbol(r rune) bool {
	for _, p := range prohibitedRunes {
		if r == p {
			return true
		}
	}
	return unicode.IsSpace(r)
}
