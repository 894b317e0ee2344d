package app

import (
	"fmt"
	"io"
	"time"
)

// Logger is the logging surface injected into every subsystem. The
// component tag keeps one shared sink readable across packages.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Warnf(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Warnf(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

// FileLogger writes timestamped lines to any writer (a log file, or
// stdout for interactive runs).
type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }

func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}

func (l FileLogger) Warnf(component string, format string, args ...interface{}) {
	writeLog(l.w, "WARN", component, format, args...)
}

func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}

// MultiLogger fans out to several sinks (e.g. stdout plus a debug file).
type MultiLogger []Logger

func (m MultiLogger) Infof(component, format string, args ...interface{}) {
	for _, l := range m {
		l.Infof(component, format, args...)
	}
}

func (m MultiLogger) Warnf(component, format string, args ...interface{}) {
	for _, l := range m {
		l.Warnf(component, format, args...)
	}
}

func (m MultiLogger) Errorf(component, format string, args ...interface{}) {
	for _, l := range m {
		l.Errorf(component, format, args...)
	}
}
