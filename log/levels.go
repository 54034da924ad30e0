package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

type Level = logrus.Level

const (
	PanicLevel = logrus.PanicLevel
	FatalLevel = logrus.FatalLevel
	ErrorLevel = logrus.ErrorLevel
	WarnLevel  = logrus.WarnLevel
	InfoLevel  = logrus.InfoLevel
	DebugLevel = logrus.DebugLevel
)

// SetOutputLevel sets the logrus standard logger level. The core itself
// never decides verbosity; the host wires this up from its own flags.
func SetOutputLevel(lvl Level) {
	logrus.SetLevel(lvl)
}
