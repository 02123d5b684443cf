package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
)

const timeFmt = "2006/01/02 15:04:05.000000"

// Level is an alias of the apex log level.
type Level = log.Level

const (
	DebugLevel = log.DebugLevel
	InfoLevel  = log.InfoLevel
	WarnLevel  = log.WarnLevel
	ErrorLevel = log.ErrorLevel
)

// LogWithWriters is a logger used with the image-manager CLI, allowing the
// caller to print entries for various levels, including Info, Debug and Error.
type LogWithWriters struct {
	sync.Mutex
	log.Logger
	wantTime bool
	clock    func() time.Time
	out      io.Writer
	errOut   io.Writer
}

// NewLogWithWriters creates a logger to be used with the image-manager CLI.
func NewLogWithWriters(stdout, stderr io.Writer, opts ...func(*LogWithWriters)) *LogWithWriters {
	lw := &LogWithWriters{
		Logger: log.Logger{
			Level: log.InfoLevel,
		},
		wantTime: false,
		clock:    time.Now,
		out:      stdout,
		errOut:   stderr,
	}
	lw.Logger.Handler = lw

	for _, opt := range opts {
		opt(lw)
	}

	return lw
}

// WithClock is an option used to initialize a LogWithWriters with a given
// clock function.
func WithClock(clock func() time.Time) func(writers *LogWithWriters) {
	return func(logger *LogWithWriters) {
		logger.clock = clock
	}
}

// WithVerbose is an option used to initialize a LogWithWriters with verbose
// logging.
func WithVerbose() func(writers *LogWithWriters) {
	return func(logger *LogWithWriters) {
		logger.Level = log.DebugLevel
	}
}

// HandleLog handles log events, printing entries appropriately.
func (lw *LogWithWriters) HandleLog(e *log.Entry) error {
	lw.Lock()
	defer lw.Unlock()

	writer := lw.writerForLevel(e.Level)

	_, err := fmt.Fprint(writer, appendMissingLineFeed(fmt.Sprintf("%s%s", formatLevel(e.Level), e.Message)))

	return err
}

// WriterForLevel returns a Writer for the given Level. Entries written to it
// are dropped when the logger is configured above that level.
func (lw *LogWithWriters) WriterForLevel(level Level) io.Writer {
	lw.Lock()
	defer lw.Unlock()

	return lw.writerForLevel(level)
}

func (lw *LogWithWriters) writerForLevel(level Level) io.Writer {
	if lw.Level > level {
		return io.Discard
	}

	if level == ErrorLevel {
		return &leveledWriter{out: lw.errOut, clock: lw.clock, wantTime: lw.wantTime}
	}

	return &leveledWriter{out: lw.out, clock: lw.clock, wantTime: lw.wantTime}
}

// leveledWriter stamps entries with the logger's clock before forwarding
// them, so writers handed out by WriterForLevel format like HandleLog output.
type leveledWriter struct {
	sync.Mutex
	out      io.Writer
	clock    func() time.Time
	wantTime bool
}

func (w *leveledWriter) Write(buf []byte) (int, error) {
	w.Lock()
	defer w.Unlock()

	prefix := ""
	if w.wantTime {
		prefix = w.clock().Format(timeFmt) + " "
	}

	_, err := fmt.Fprint(w.out, appendMissingLineFeed(prefix+string(buf)))
	return len(buf), err
}

// Writer returns the base Writer.
func (lw *LogWithWriters) Writer() io.Writer {
	return lw.out
}

// WantTime turns timestamps on in log entries.
func (lw *LogWithWriters) WantTime(f bool) {
	lw.Lock()
	defer lw.Unlock()

	lw.wantTime = f
}

// WantQuiet reduces the number of log entries printed.
func (lw *LogWithWriters) WantQuiet(f bool) {
	lw.Lock()
	defer lw.Unlock()

	if f {
		lw.Level = log.WarnLevel
	}
}

// WantVerbose increases the number of log entries printed.
func (lw *LogWithWriters) WantVerbose(f bool) {
	lw.Lock()
	defer lw.Unlock()

	if f {
		lw.Level = log.DebugLevel
	}
}

// IsVerbose returns whether verbose logging is on.
func (lw *LogWithWriters) IsVerbose() bool {
	return lw.Level == log.DebugLevel
}

func formatLevel(ll log.Level) string {
	switch ll {
	case log.ErrorLevel:
		return style.Error("ERROR: ")
	case log.WarnLevel:
		return style.Warn("Warning: ")
	case log.DebugLevel:
		return style.Prefix("DEBUG: ")
	}

	return ""
}

func appendMissingLineFeed(msg string) string {
	buff := []byte(msg)
	if len(buff) == 0 || buff[len(buff)-1] != '\n' {
		buff = append(buff, '\n')
	}
	return string(buff)
}
