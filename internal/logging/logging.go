// Package logging configures the shared diagnostic logger. User-facing
// responses go to stdout; everything here goes to stderr.
package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger is the process-wide logger instance.
var Logger = log.New(os.Stderr)

func init() {
	Logger.SetTimeFormat("")
	Logger.SetLevel(log.InfoLevel)
}

// Configure sets the log level. The CLI flag wins over NEURALFORGE_LOG_LEVEL.
func Configure(level string) {
	if level == "" {
		level = os.Getenv("NEURALFORGE_LOG_LEVEL")
	}
	switch strings.ToLower(level) {
	case "debug":
		Logger.SetLevel(log.DebugLevel)
	case "warn":
		Logger.SetLevel(log.WarnLevel)
	case "error":
		Logger.SetLevel(log.ErrorLevel)
	default:
		Logger.SetLevel(log.InfoLevel)
	}
}
