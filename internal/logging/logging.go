// Package logging builds the process-wide logrus logger.
package logging

import (
	"os"
	"strings"

	"github.com/san98215/fitness-app/internal/config"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stdout with the configured level and
// format ("json" or "text"). Unknown levels fall back to info.
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
