package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// log is the CLI-wide logger. The generator packages stay log-free; only
// command plumbing reports progress here.
var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
	With().Timestamp().Logger().
	Level(zerolog.InfoLevel)

func configureLogging(verbose bool) {
	if verbose {
		log = log.Level(zerolog.DebugLevel)
	}
}
