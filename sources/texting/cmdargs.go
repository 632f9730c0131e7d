package texting

import (
	"strings"
	"unicode"
)

// ParseCmdArgs splits command arguments on whitespace. Single or double quotes group
// words into one argument and a backslash escapes the next quote or backslash.
func ParseCmdArgs(args string) []string {
	var (
		result  []string
		current strings.Builder
		quote   rune
		escaped bool
	)

	flush := func() {
		if arg := current.String(); strings.TrimSpace(arg) != "" {
			result = append(result, arg)
		}
		current.Reset()
	}

	for _, r := range args {
		switch {
		case escaped:
			if r != '\'' && r != '"' && r != '\\' {
				current.WriteRune('\\')
			}
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
		case quote == 0 && unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	flush()

	return result
}
