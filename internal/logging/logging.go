// Package logging holds the logger shared by every circpack package. Nothing
// is logged until a logger is installed with Set.
package logging

import (
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type holder struct {
	logrus.FieldLogger
}

var loggerPtr atomic.Pointer[holder]

func init() {
	Set(nil)
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Set installs l. Passing nil restores the silent default.
func Set(l logrus.FieldLogger) {
	if l == nil {
		l = discard()
	}
	loggerPtr.Store(&holder{l})
}

func L() logrus.FieldLogger {
	return loggerPtr.Load().FieldLogger
}
