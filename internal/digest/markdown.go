package digest

import "strings"

// Characters that corrupt Markdown link syntax when they appear in a title.
var markdownEscapes = map[string]string{
	"[": "〔",
	"]": "〕",
	"(": "（",
	")": "）",
	"'": "′",
}

// EscapeMarkdown replaces Markdown-sensitive characters in s so the text can
// be embedded in a link label without breaking message formatting.
func EscapeMarkdown(s string) string {
	for from, to := range markdownEscapes {
		s = strings.ReplaceAll(s, from, to)
	}
	return s
}
