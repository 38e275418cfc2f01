// backend-go/pkg/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

var (
	// Log is the global logger instance
	Log zerolog.Logger
)

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	Log = build(os.Stdout, "console", zerolog.InfoLevel)
	log.Logger = Log
}

func build(out io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if !strings.EqualFold(format, "json") {
		// Default to console output with color
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Caller().
		Logger()
}

// Configure rebuilds the global logger writing to out. format is "console" or "json".
func Configure(out io.Writer, format, levelStr string) {
	Log = build(out, format, zerolog.InfoLevel)
	SetLevel(levelStr)
}

// SetLevel sets the log level
func SetLevel(levelStr string) {
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil || levelStr == "" {
		if levelStr != "" {
			Log.Warn().Str("level", levelStr).Msg("invalid log level, defaulting to info")
		}
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	Log = Log.Level(level)
	// keep the zerolog/log package logger in sync
	log.Logger = Log
}
