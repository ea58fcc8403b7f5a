// Package logging configures the application logger. The TUI owns the
// terminal, so log output goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mvalarezo/taller/internal/config"
)

// New builds a file-backed logger from the log config. An unwritable log
// path is not fatal: the logger falls back to discarding output so the TUI
// keeps working.
func New(cfg config.LogConfig) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	log.SetLevel(level)

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
		log.SetOutput(io.Discard)
		return log, nil
	}
	file, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return log, nil
	}
	log.SetOutput(file)

	return log, nil
}
