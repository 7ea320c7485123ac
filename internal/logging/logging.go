package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Levels accepted by NewLogger and the --log-level flag.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Logger is a thin wrapper around zerolog that the rest of the codebase
// depends on. Components receive a *Logger and never touch zerolog directly,
// so the backing implementation can be swapped in tests.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger returns a logger writing human-readable output to w at the given
// level. Unrecognized levels fall back to info.
func NewLogger(level string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case LevelDebug:
		lvl = zerolog.DebugLevel
	case LevelWarn:
		lvl = zerolog.WarnLevel
	case LevelError:
		lvl = zerolog.ErrorLevel
	}

	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return &Logger{logger: zerolog.New(cw).Level(lvl).With().Timestamp().Logger()}
}

// NewNopLogger returns a logger that discards everything. Used in tests.
func NewNopLogger() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

// Zerolog exposes the underlying zerolog.Logger for adapters (e.g. SQL
// statement logging).
func (l *Logger) Zerolog() zerolog.Logger {
	return l.logger
}

// WithField returns a copy of the logger with an extra key/value attached to
// every message.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{logger: l.logger.With().Str(key, value).Logger()}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}
