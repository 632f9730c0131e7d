package artificial

import (
	"strconv"
	"strings"
	"time"
)

const yearPlaceholder = "{{year}}"

// SystemPrompt renders the configured instruction for the moment of the request.
func SystemPrompt(template string, now time.Time) string {
	return strings.ReplaceAll(template, yearPlaceholder, strconv.Itoa(now.Year()))
}
