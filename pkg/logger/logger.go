// pkg/logger/logger.go
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log backs startup and shutdown messages in the binaries. Packages log
// through the zerolog global instead; SetLevel keeps both in line with
// the configured server mode.
var Log zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = time.RFC3339

	Log = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}).With().Timestamp().Logger()
}

// SetLevel maps the server mode onto a log level. "debug" enables debug
// logging; anything zerolog cannot parse (including "release") runs at
// info.
func SetLevel(mode string) {
	level, err := zerolog.ParseLevel(mode)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
}
