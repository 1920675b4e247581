package system

import (
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for diagnostics.
// It prints to stderr with timestamps so it never mixes with the menu on stdout.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "taskmgr",
})

// SetLevel parses level (debug, info, warn, error) and applies it to Logger.
// Empty input keeps the current level.
func SetLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	lvl, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// Component returns a sub-logger tagged with the component name.
func Component(name string) *clog.Logger {
	return Logger.With("component", name)
}
