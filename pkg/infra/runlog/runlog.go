package runlog

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ytrip/pkg/domain/interfaces"
)

// Logger appends severity-tagged, timestamped lines to the run's log file
// and mirrors each line to the console. The file is opened and closed per
// line: no handle is held across the run, so two overlapping runs writing
// to the same file stay safe at the line level (with no ordering guarantee
// between them).
type Logger struct {
	path    string
	console io.Writer
	now     func() time.Time
}

var _ interfaces.RunLogger = (*Logger)(nil)

// Option configures a Logger
type Option func(*Logger)

// WithConsole overrides the console mirror writer (stdout by default)
func WithConsole(w io.Writer) Option {
	return func(l *Logger) {
		l.console = w
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// New creates a Logger writing to the given file path. It verifies the path
// is writable by creating the file up front; later per-line write failures
// are dropped silently.
func New(path string, options ...Option) (*Logger, error) {
	logger := &Logger{
		path:    path,
		console: os.Stdout,
		now:     time.Now,
	}
	for _, opt := range options {
		opt(logger)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open run log file", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close run log file", goerr.V("path", path))
	}

	return logger, nil
}

// Debug writes a DEBUG line
func (l *Logger) Debug(msg string) {
	l.write("DEBUG", msg)
}

// Warning writes a WARN line
func (l *Logger) Warning(msg string) {
	l.write("WARN", msg)
}

// Error writes an ERROR line
func (l *Logger) Error(msg string) {
	l.write("ERROR", msg)
}

func (l *Logger) write(level, msg string) {
	line := fmt.Sprintf("[%s] [%s] %s", l.now().Format("2006-01-02 15:04:05"), level, msg)

	fmt.Fprintln(l.console, line)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer func() {
		_ = f.Close()
	}()
	_, _ = fmt.Fprintln(f, line)
}
