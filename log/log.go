/*
Copyright © 2026 The dynamic-rounding Authors
This file is part of dynamic-rounding
*/

// Package log is a thin facade over the logrus standard logger, so that the
// rest of dynamic-rounding does not import logrus directly.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Fields is an alias for logrus.Fields.
type Fields = logrus.Fields

// SetOutput sets the standard logger output.
func SetOutput(out io.Writer) {
	logrus.SetOutput(out)
}

// SetupLogLevel sets the standard logger level from the --debug and --quiet flags.
// Debug wins if both are set.
func SetupLogLevel(showDebug bool, suppressWarnings bool) {
	switch {
	case showDebug:
		logrus.SetLevel(logrus.TraceLevel)
	case suppressWarnings:
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

// SetupFormatter configures the text formatter. Timestamps only get in the way
// of a short-lived command, so they are shown only when debugging.
func SetupFormatter(showDebug bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !showDebug,
		FullTimestamp:    showDebug,
	})
}

// IsTraceEnabled reports whether trace messages would be emitted; use it to
// skip building expensive messages.
func IsTraceEnabled() bool {
	return logrus.IsLevelEnabled(logrus.TraceLevel)
}

// WithFields returns an entry carrying fields for a structured message.
func WithFields(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func Trace(args ...interface{}) {
	logrus.Trace(args...)
}

func Tracef(format string, args ...interface{}) {
	logrus.Tracef(format, args...)
}

func Info(args ...interface{}) {
	logrus.Info(args...)
}

func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}

func Warn(args ...interface{}) {
	logrus.Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}
