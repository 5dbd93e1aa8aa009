package main

import (
	"fmt"

	"givehaven/pkg/types"

	"github.com/sirupsen/logrus"
)

func newLogger(config *types.Config) (*logrus.Logger, error) {
	logger := logrus.New()

	if config.IsDevelopment() {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", config.LogLevel, err)
	}
	logger.SetLevel(level)

	return logger, nil
}
