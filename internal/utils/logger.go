package utils

import (
	"io"
	"log"
	"os"
)

// Logger is a simple leveled logger for the application
type Logger struct {
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
}

// NewLogger creates a logger writing info to stdout and warnings and errors to stderr
func NewLogger() *Logger {
	return NewLoggerWithWriters(os.Stdout, os.Stderr)
}

// NewLoggerWithWriters creates a logger over the given writers
func NewLoggerWithWriters(out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime | log.Lmicroseconds
	return &Logger{
		infoLog:  log.New(out, "INFO: ", flags),
		warnLog:  log.New(errOut, "WARN: ", flags),
		errorLog: log.New(errOut, "ERROR: ", flags),
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, v ...interface{}) {
	l.infoLog.Printf(format, v...)
}

// Warn logs a recoverable problem
func (l *Logger) Warn(format string, v ...interface{}) {
	l.warnLog.Printf(format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.errorLog.Printf(format, v...)
}

// Writer exposes the info stream, e.g. for gin's request logger
func (l *Logger) Writer() io.Writer {
	return l.infoLog.Writer()
}
