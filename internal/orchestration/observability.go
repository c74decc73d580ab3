package orchestration

import (
	"github.com/sirupsen/logrus"
)

// Observer receives progress reports from lifecycle runs.
type Observer interface {
	Printf(format string, v ...interface{})

	// WithFields returns a new Observer carrying additional context fields.
	WithFields(fields map[string]string) Observer
}

// LogObserver implements Observer on top of logrus.
type LogObserver struct {
	entry *logrus.Entry
}

// NewLogObserver creates an observer writing to the standard logger.
func NewLogObserver() *LogObserver {
	return &LogObserver{entry: logrus.NewEntry(logrus.StandardLogger())}
}

// NewLogObserverWith creates an observer writing to the given logger.
func NewLogObserverWith(logger *logrus.Logger) *LogObserver {
	return &LogObserver{entry: logrus.NewEntry(logger)}
}

// Printf implements Observer.
func (o *LogObserver) Printf(format string, v ...interface{}) {
	o.entry.Infof(format, v...)
}

// WithFields implements Observer.
func (o *LogObserver) WithFields(fields map[string]string) Observer {
	logFields := make(logrus.Fields, len(fields))
	for k, v := range fields {
		logFields[k] = v
	}
	return &LogObserver{entry: o.entry.WithFields(logFields)}
}
