package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Console возвращает zerolog.Logger с человекочитаемым выводом в stderr.
func Console(level string, color bool) (zerolog.Logger, error) {
	return New(os.Stderr, level, color)
}

// New создаёт логгер, пишущий в out через zerolog.ConsoleWriter.
func New(out io.Writer, level string, color bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: time.DateTime,
	}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}
