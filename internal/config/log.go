package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w. The level comes from
// LOG_LEVEL (debug, info, warn, error) and defaults to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		logger.Warn("unknown LOG_LEVEL, using info", "value", GetEnv("LOG_LEVEL", ""))
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
