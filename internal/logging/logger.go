package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds a logrus logger writing to out.
// In production it emits JSON for log aggregation, otherwise human-readable text.
// An unknown level falls back to info.
func New(out io.Writer, environment, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return logger
}

// NewFile builds a logger appending to path, or discarding everything when path is empty.
// The returned closer must be closed by the caller.
func NewFile(path, environment, level string) (*logrus.Logger, io.Closer, error) {
	if path == "" {
		return New(io.Discard, environment, level), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, err
	}
	return New(f, environment, level), f, nil
}
