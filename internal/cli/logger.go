package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"taskman/internal/config"
)

// NewLogger returns the diagnostic logger. Debug output is enabled only in
// debug mode; otherwise warnings and errors are shown.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          config.AppName,
	})
}
