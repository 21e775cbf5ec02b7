package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. Services derive scoped children from it
// via logger.With().Str("service", ...).
func New() zerolog.Logger {
	// Hosted log collectors parse the level from a "severity" field.
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Use ConsoleWriter for local development for more readable logs.
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return logger.Level(zerolog.InfoLevel)
}
