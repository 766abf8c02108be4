// Package logging provides the zerolog-backed logger wired through the
// service. It satisfies the auth.Logger key/value interface.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger behind alternating key/value arguments.
type Logger struct {
	logger zerolog.Logger
}

// New creates a logger writing JSON to stderr at the given level. Unknown
// level strings fall back to debug.
func New(level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}

	zl := zerolog.New(os.Stderr).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return &Logger{logger: zl}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{logger: l.logger.With().Str("component", name).Logger()}
}

func (l *Logger) Debug(msg string, args ...any) { l.emit(l.logger.Debug(), msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.emit(l.logger.Info(), msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.emit(l.logger.Warn(), msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.emit(l.logger.Error(), msg, args...) }

// Fatal logs the message and exits the process.
func (l *Logger) Fatal(msg string, args ...any) { l.emit(l.logger.Fatal(), msg, args...) }

func (l *Logger) emit(event *zerolog.Event, msg string, args ...any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		if err, ok := args[i+1].(error); ok && key == "error" {
			event = event.Err(err)
			continue
		}
		event = event.Interface(key, args[i+1])
	}
	event.Msg(msg)
}
