package gc

import "github.com/sirupsen/logrus"

// Logger is the minimal structured-logging surface the Collector needs for
// sweep/mark/refresh diagnostics. *logrus.Logger and *logrus.Entry already
// satisfy it.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

func defaultLogger() Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// NoopLogger discards every message. Use it with WithLogger when embedding
// a Collector in a context that already has its own logging convention and
// the sweep/refresh diagnostics would just be noise.
type NoopLogger struct{}

func (NoopLogger) Debugf(string, ...any) {}
func (NoopLogger) Warnf(string, ...any)  {}
