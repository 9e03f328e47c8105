// Package logger provides the process-wide zerolog logger.
//
// All replay and recording diagnostics flow through here. Per-probe failures
// (UI tree reads, OCR frames) log at debug level so normal runs stay quiet.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	Level(zerolog.InfoLevel).
	With().Timestamp().Logger()

// Init configures the global logger. level is a zerolog level name
// ("debug", "info", ...); unknown levels fall back to info. If logFile is
// non-empty, output is duplicated to that file.
func Init(level string, logFile string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	log = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().Timestamp().Logger()

	return nil
}

// InitQuiet discards all log output. Used by the MCP server where stdout and
// stderr belong to the transport.
func InitQuiet() {
	log = zerolog.New(io.Discard)
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event { return log.Debug() }

// Info starts an info-level event.
func Info() *zerolog.Event { return log.Info() }

// Warn starts a warn-level event.
func Warn() *zerolog.Event { return log.Warn() }

// Error starts an error-level event.
func Error() *zerolog.Event { return log.Error() }

// Fatal starts a fatal-level event; the message call exits the process.
func Fatal() *zerolog.Event { return log.Fatal() }
