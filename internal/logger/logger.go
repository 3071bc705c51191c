package logger

import (
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Init настраивает структурированный логгер под окружение.
func Init(env string) {
	level := logrus.InfoLevel
	if env == "development" {
		level = logrus.DebugLevel
	}
	Log.SetLevel(level)

	// JSON для production, текст для локальной разработки
	if env == "production" {
		Log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

// WithComponent возвращает entry с полем component.
func WithComponent(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
