package texting

import "strings"

// markdownReserved lists every character MarkdownV2 requires to be escaped outside of
// entities, the backslash included.
const markdownReserved = "_*[]()~`>#+-=|{}.!\\"

func EscapeMarkdown(input string) string {
	if !strings.ContainsAny(input, markdownReserved) {
		return input
	}

	var out strings.Builder
	out.Grow(len(input) + len(input)/8)
	for _, r := range input {
		if strings.ContainsRune(markdownReserved, r) {
			out.WriteByte('\\')
		}
		out.WriteRune(r)
	}
	return out.String()
}
