// Package logger carries the app's structured logging. Output goes to
// stderr so command output on stdout stays parseable.
package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Log is the package-level logger. It starts as an info-level console
// logger so boot paths can log before configuration is read; Init
// reshapes it once the config is known.
var Log = build(FormatConsole)

// Output formats accepted by Init.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Init applies the configured level and output format. Unrecognized
// values keep the info-level console defaults rather than failing boot.
func Init(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	Log = build(format)
}

func build(format string) zerolog.Logger {
	if format == FormatJSON {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(out).With().Timestamp().Caller().Logger()
}
