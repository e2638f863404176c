// Package blog is a thin structured-logging wrapper shared by the guest
// loader, the trampoline registry, and the syscall dispatcher for
// diagnostic messages. Hot paths (register accessors, intrinsics,
// assembler emission) never log.
package blog

import "github.com/sirupsen/logrus"

// Logger is the structured logger used across Berberis components.
type Logger struct {
	entry *logrus.Entry
}

// New creates a Logger tagged with component, the package name of the
// caller (e.g. "guestloader", "trampoline").
func New(component string) *Logger {
	return &Logger{entry: logrus.WithField("component", component)}
}

// With returns a child Logger with additional structured fields attached.
func (l *Logger) With(fields logrus.Fields) *Logger {
	return &Logger{entry: l.entry.WithFields(fields)}
}

func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
