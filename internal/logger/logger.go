package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger provides leveled logging (info/warning/error) to a console writer and,
// optionally, a rotating log file.
type Logger struct {
	log  *logrus.Logger
	file *lumberjack.Logger
}

// New creates a Logger that writes only to out.
func New(out io.Writer) *Logger {
	return newLogger(out, nil)
}

// NewWithFile creates a Logger that writes to out and to roadcheck.log inside logDir.
// An empty logDir behaves like New.
func NewWithFile(out io.Writer, logDir string) (*Logger, error) {
	if logDir == "" {
		return New(out), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "roadcheck.log"),
		LocalTime:  true,
		MaxSize:    10,
		MaxAge:     7,
		MaxBackups: 3,
	}
	return newLogger(out, file), nil
}

func newLogger(out io.Writer, file *lumberjack.Logger) *Logger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&formatter.Formatter{
		NoColors:        true,
		HideKeys:        true,
		ShowFullLevel:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if file != nil {
		l.SetOutput(io.MultiWriter(out, file))
	} else {
		l.SetOutput(out)
	}

	return &Logger{log: l, file: file}
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.log.Warnf(format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
