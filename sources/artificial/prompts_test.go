package artificial

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemPromptSubstitutesYear(t *testing.T) {
	now := time.Date(2027, time.February, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "It is 2027. Again 2027.", SystemPrompt("It is {{year}}. Again {{year}}.", now))
	assert.Equal(t, "No placeholder", SystemPrompt("No placeholder", now))
}
