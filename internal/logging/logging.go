// Package logging wires zerolog the way smilemakc-mbflow's internal/config.go
// does: a console-friendly writer during development, a single configured
// global logger handed out everywhere else via github.com/rs/zerolog/log.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup parses levelName (zerolog's level strings: debug, info, warn, error,
// fatal) and installs it as the global logger, writing human-readable
// console output to stderr. An unrecognized level falls back to info and
// logs a warning about the fallback rather than failing the run over a
// cosmetic flag.
func Setup(levelName string) {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	if err != nil {
		log.Warn().Str("requested", levelName).Msg("lifter/logging: unrecognized log level, defaulting to info")
	}
}
