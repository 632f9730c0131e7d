package persistence

import (
	"fmt"
	"relaybot/sources/tracing"
	"strings"
)

// gormtracer forwards gorm's printf-style output to the structured logger.
type gormtracer struct {
	logger *tracing.Logger
}

func (w *gormtracer) Printf(format string, args ...any) {
	w.logger.W("Journal database notice", "gorm", strings.TrimSpace(fmt.Sprintf(format, args...)))
}
