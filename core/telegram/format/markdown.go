package format

import "strings"

const mdV1Specials = "_*`["

// EscapeMarkdown escapes Telegram Markdown (V1) special characters so that
// user-supplied text can be embedded in formatted notifications verbatim.
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(mdV1Specials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
