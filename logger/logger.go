package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type consoleLogger struct {
	lock    sync.Mutex
	out     io.Writer
	verbose bool
	debug   *color.Color
	info    *color.Color
	err     *color.Color
}

// NewWithWriter returns a Logger writing to out. Debug lines are dropped
// unless verbose is set.
func NewWithWriter(out io.Writer, verbose bool) Logger {
	return &consoleLogger{
		out:     out,
		verbose: verbose,
		debug:   color.New(color.FgHiBlack),
		info:    color.New(color.FgCyan),
		err:     color.New(color.FgRed, color.Bold),
	}
}

func (l *consoleLogger) printf(c *color.Color, level, format string, v ...any) {
	l.lock.Lock()
	defer l.lock.Unlock()
	c.Fprintf(l.out, "[%s] %s\n", level, fmt.Sprintf(format, v...))
}

func (l *consoleLogger) Debugf(format string, v ...any) {
	if l.verbose {
		l.printf(l.debug, "DEBUG", format, v...)
	}
}

func (l *consoleLogger) Infof(format string, v ...any) {
	l.printf(l.info, "INFO", format, v...)
}

func (l *consoleLogger) Errorf(format string, v ...any) {
	l.printf(l.err, "ERROR", format, v...)
}

type nopLogger struct{}

// Nop returns a Logger that discards everything.
func Nop() Logger { return nopLogger{} }

func (nopLogger) Debugf(format string, v ...any) {}
func (nopLogger) Infof(format string, v ...any)  {}
func (nopLogger) Errorf(format string, v ...any) {}
