package logger

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

func Init(level string) {
	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

func Get() *logrus.Logger {
	once.Do(func() {
		if logger == nil {
			Init("info")
		}
	})
	return logger
}
