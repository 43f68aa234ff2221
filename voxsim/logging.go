package voxsim

import (
	"log"
	"os"
	"sync"
)

// Logger is the minimal structured-ish logging surface Engine depends on.
// It mirrors the teacher's logging.go pattern so the core package never
// hard-codes a concrete logging library.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DefaultLogger writes Info/Debug to stdout and Warn/Error to stderr using
// the standard log package, with microsecond timestamps. Debug lines are
// dropped unless SetDebug(true) was called.
type DefaultLogger struct {
	mu    sync.Mutex
	debug bool

	out *log.Logger
	err *log.Logger
}

// NewDefaultLogger returns a DefaultLogger writing to os.Stdout/os.Stderr.
func NewDefaultLogger() *DefaultLogger {
	return &DefaultLogger{
		out: log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds),
		err: log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = enabled
}

func (l *DefaultLogger) Debugf(format string, args ...interface{}) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Printf("DEBUG "+format, args...)
}

func (l *DefaultLogger) Infof(format string, args ...interface{}) {
	l.out.Printf("INFO "+format, args...)
}

func (l *DefaultLogger) Warnf(format string, args ...interface{}) {
	l.err.Printf("WARN "+format, args...)
}

func (l *DefaultLogger) Errorf(format string, args ...interface{}) {
	l.err.Printf("ERROR "+format, args...)
}

// nopLogger discards everything; used as Engine's default so callers that
// don't care about logging pay no cost and see no output.
type nopLogger struct{}

// NewNopLogger returns a Logger whose methods are all no-ops.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) DebugEnabled() bool                        { return false }
func (nopLogger) SetDebug(bool)                              {}
func (nopLogger) Debugf(format string, args ...interface{})  {}
func (nopLogger) Infof(format string, args ...interface{})   {}
func (nopLogger) Warnf(format string, args ...interface{})   {}
func (nopLogger) Errorf(format string, args ...interface{})  {}
