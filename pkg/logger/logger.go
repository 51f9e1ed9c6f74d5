//go:build !logless

package logger

import (
	"os"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Log is the process-wide structured logger. Ingest, sampling and CLI
// code all derive component loggers from it via Component so that log
// lines carry a "component" field without each package constructing
// its own zerolog.Logger.
var Log = zlog.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// Component returns a child logger tagged with the given component
// name, e.g. logger.Component("eqdsk").Info().Msg("loaded").
func Component(name string) zerolog.Logger {
	return Log.With().Str("component", name).Logger()
}
