// Package logx is the structured logging entry point shared by every
// package in this module. It wraps logrus so that session lifecycle events
// and dropped packets all land on one configurable,
// field-aware logger instead of each package rolling its own.
package logx

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Fields is re-exported so callers don't need to import logrus directly.
type Fields = logrus.Fields

// Logger is the structured logger interface this module depends on. It is
// satisfied by *logrus.Entry and *logrus.Logger.
type Logger interface {
	WithField(key string, value any) *logrus.Entry
	WithFields(fields Fields) *logrus.Entry
	WithError(err error) *logrus.Entry
	Debug(args ...any)
	Debugf(format string, args ...any)
	Info(args ...any)
	Infof(format string, args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
	Errorf(format string, args ...any)
}

var root = newRoot()

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Configure adjusts the package-wide root logger's level and output.
func Configure(level logrus.Level, out io.Writer) {
	root.SetLevel(level)
	root.SetOutput(out)
}

// Named returns a logger scoped to a component, mirroring the teacher's
// component-tagged logger idiom (internal/logging.GetLogger) but backed by
// logrus fields instead of a bespoke formatter.
func Named(component string) *logrus.Entry {
	return root.WithField("component", component)
}

// Root returns the shared root logger for callers that want to reconfigure
// it directly (tests, cmd/ entry points).
func Root() *logrus.Logger { return root }
