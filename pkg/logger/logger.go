package logger

import (
	"log"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

// Logger is the leveled logger carried in the request context.
type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type defaultLogger struct {
	level int
}

// NewLogger returns a logger writing to the standard log output. Records
// below the given level are dropped; SILENCE drops everything.
func NewLogger(level int) *defaultLogger {
	return &defaultLogger{level: level}
}

func (l *defaultLogger) logf(level int, prefix, msg string, a ...any) {
	if l.level > level {
		return
	}

	log.Printf(prefix+msg+"\n", a...)
}

func (l *defaultLogger) Debugf(msg string, a ...any) {
	l.logf(DEBUG, "[DEBUG] ", msg, a...)
}

func (l *defaultLogger) Infof(msg string, a ...any) {
	l.logf(INFO, "[INFO] ", msg, a...)
}

func (l *defaultLogger) Warnf(msg string, a ...any) {
	l.logf(WARNING, "[WARN] ", msg, a...)
}

func (l *defaultLogger) Errorf(msg string, a ...any) {
	l.logf(ERROR, "[ERROR] ", msg, a...)
}
