package transform

import "unicode"

// SmartTruncate shortens text to at most maxLen runes, cutting at the last space when
// one exists, and appends an ellipsis when anything was removed.
func SmartTruncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	truncated := runes[:maxLen]

	for i := len(truncated) - 1; i > 0; i-- {
		if unicode.IsSpace(truncated[i]) {
			return string(truncated[:i]) + "…"
		}
	}

	return string(truncated) + "…"
}
