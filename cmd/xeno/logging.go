package main

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func newLogger(w io.Writer, verbose, veryVerbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	switch {
	case veryVerbose:
		level = zerolog.TraceLevel
	case verbose:
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
