// Package stdlogger adapts the global zerolog logger to printf style logger interfaces such as gorm's.
package stdlogger

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to the global zerolog logger.
type Logger struct {
	component string
	level     zerolog.Level
}

// NewComponent returns a Logger tagging each line with component and
// logging Printf calls at level.
func NewComponent(component string, level zerolog.Level) *Logger {
	return &Logger{component: component, level: level}
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...interface{}) {
	ev := log.WithLevel(l.level)
	if l.component != "" {
		ev = ev.Str("component", l.component)
	}

	// gorm formats multi line messages
	ev.Msgf(strings.TrimSpace(format), args...)
}
