package transform

import "strings"

// Chunks splits text into pieces of at most cs runes. A piece is cut at the last line
// break of its window when there is one in the second half of it.
func Chunks(text string, cs int) []string {
	if cs <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	var chunks []string
	for len(runes) > cs {
		cut := cs
		window := string(runes[:cs])
		if idx := strings.LastIndex(window, "\n"); idx >= 0 {
			if at := len([]rune(window[:idx])); at >= cs/2 {
				cut = at + 1
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}
