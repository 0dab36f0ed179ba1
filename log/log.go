package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Handler is the handler type returned by this package.
type Handler = slog.Handler

// Level is a log severity name.
type Level string

const (
	// LevelError logs errors only.
	LevelError Level = "error"
	// LevelWarn logs warnings and errors.
	LevelWarn Level = "warn"
	// LevelInfo logs informational messages and above.
	LevelInfo Level = "info"
	// LevelDebug logs everything.
	LevelDebug Level = "debug"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatLogfmt outputs logs in logfmt format, with source locations.
	FormatLogfmt Format = "logfmt"
	// FormatText outputs compact key=value lines without timestamps or
	// source locations, for interactive use.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

var (
	levels  = []Level{LevelError, LevelWarn, LevelInfo, LevelDebug}
	formats = []Format{FormatJSON, FormatLogfmt, FormatText}
)

// GetAllLevelStrings returns every level name.
func GetAllLevelStrings() []string {
	out := make([]string, len(levels))
	for i, l := range levels {
		out[i] = string(l)
	}

	return out
}

// GetAllFormatStrings returns every format name.
func GetAllFormatStrings() []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = string(f)
	}

	return out
}

// ParseLevel parses a case-insensitive level name. "warning" is accepted as
// [LevelWarn].
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// ParseFormat parses a case-insensitive format name.
func ParseFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}

// SlogLevel returns the [slog.Level] for l. Unknown levels map to
// [slog.LevelInfo].
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelError:
		return slog.LevelError
	case LevelWarn:
		return slog.LevelWarn
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
	}

	return slog.LevelInfo
}

// NewHandlerFromStrings creates a [Handler] from level and format names.
// Errors wrap [ErrInvalidArgument].
func NewHandlerFromStrings(w io.Writer, level, format string) (Handler, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	f, err := ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, f), nil
}

// NewHandler creates a [Handler] writing to w at the given level and format.
// Unknown formats fall back to [FormatText].
func NewHandler(w io.Writer, level Level, format Format) Handler {
	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     level.SlogLevel(),
		})

	case FormatLogfmt:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     level.SlogLevel(),
		})

	case FormatText:
	}

	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level.SlogLevel(),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	})
}
