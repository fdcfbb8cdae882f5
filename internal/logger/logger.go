package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "painel-mulher"

// New returns a JSON logger in production and a console logger elsewhere.
func New(env string) zerolog.Logger {
	return newWithWriter(env, os.Stdout)
}

func newWithWriter(env string, out io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.DebugLevel
	var w io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	if env == "production" {
		level = zerolog.InfoLevel
		w = out
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}
