package app

import (
	"io"

	"github.com/rs/zerolog"

	"tspaths/internal/types"
)

// NewLogger builds the plugin logger. Silent wins over every other option;
// with logInfoToStdOut, debug and info lines go to stdout while warnings and
// errors stay on stderr.
func NewLogger(opts types.Options, stdout io.Writer, stderr io.Writer) zerolog.Logger {
	if opts.Silent {
		return zerolog.Nop()
	}
	errWriter := zerolog.ConsoleWriter{Out: stderr, NoColor: !opts.Colors}
	var writer io.Writer = errWriter
	if opts.LogInfoToStdOut {
		writer = levelSplitWriter{
			low:  zerolog.ConsoleWriter{Out: stdout, NoColor: !opts.Colors},
			high: errWriter,
		}
	}
	return zerolog.New(writer).
		Level(zerologLevel(opts.LogLevel)).
		With().
		Timestamp().
		Str("plugin", PluginName).
		Logger()
}

func zerologLevel(level types.LogLevel) zerolog.Level {
	switch level {
	case types.LogLevelDebug:
		return zerolog.DebugLevel
	case types.LogLevelInfo:
		return zerolog.InfoLevel
	case types.LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

type levelSplitWriter struct {
	low  io.Writer
	high io.Writer
}

func (w levelSplitWriter) Write(p []byte) (int, error) {
	return w.high.Write(p)
}

func (w levelSplitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.WarnLevel {
		return w.low.Write(p)
	}
	return w.high.Write(p)
}
