package xlog

import (
	"fmt"
)

// AntsXLogger routes the ants pool logs into the "Ants" component.
// It follows the parent level because the child shares the level enabler.
type AntsXLogger struct {
	logger XLogger
}

func (l *AntsXLogger) Printf(format string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func NewAntsXLogger(logger XLogger) *AntsXLogger {
	if logger == nil {
		return &AntsXLogger{}
	}
	return &AntsXLogger{logger: logger.Named("Ants")}
}
