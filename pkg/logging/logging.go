// Package logging defines the minimal interface that loggers must support to
// be used by the image-manager client and commands.
package logging

import (
	"io"

	"github.com/timo-reymann/poc-base-image-manager/internal/style"
)

// Logger defines behavior required by a logging package used by the
// image-manager libraries.
type Logger interface {
	Debug(msg string)
	Debugf(fmt string, v ...interface{})

	Info(msg string)
	Infof(fmt string, v ...interface{})

	Warn(msg string)
	Warnf(fmt string, v ...interface{})

	Error(msg string)
	Errorf(fmt string, v ...interface{})

	Writer() io.Writer

	IsVerbose() bool
}

type isSelectableWriter interface {
	WriterForLevel(level Level) io.Writer
}

// GetWriterForLevel retrieves the appropriate Writer for the log level
// provided. Loggers that don't distinguish levels return their base Writer.
func GetWriterForLevel(logger Logger, level Level) io.Writer {
	if w, ok := logger.(isSelectableWriter); ok {
		return w.WriterForLevel(level)
	}

	return logger.Writer()
}

// Tip logs a tip.
func Tip(logger Logger, format string, v ...interface{}) {
	logger.Infof(style.Tip("Tip: ")+format, v...)
}
