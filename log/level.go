package log

import (
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Level is the severity of a log record. It extends [slog.Level] with
// [LevelTrace], used for per-statement interpreter tracing.
type Level slog.Level

const (
	LevelTrace = Level(slog.LevelDebug - 4)
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

// DefaultLevel is used when no level is configured or a level name is not
// recognized.
const DefaultLevel = LevelWarn

var levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError}

func (l Level) String() string {
	if l == LevelTrace {
		return "trace"
	}

	return strings.ToLower(slog.Level(l).String())
}

// Levels yields the names of the defined levels from least to most severe.
func Levels() iter.Seq[string] {
	return names(levels)
}

// ParseLevel returns the level named by s, case-insensitively. Besides
// "trace", any name accepted by [slog.Level.UnmarshalText] is valid,
// including offsets such as "info+2". Unknown names yield [DefaultLevel].
func ParseLevel(s string) Level {
	if strings.EqualFold(strings.TrimSpace(s), LevelTrace.String()) {
		return LevelTrace
	}

	var l slog.Level
	if l.UnmarshalText([]byte(strings.TrimSpace(s))) != nil {
		return DefaultLevel
	}

	return Level(l)
}

// Format selects the handler used to encode records.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// DefaultFormat is used when no format is configured or a format name is
// not recognized.
const DefaultFormat = FormatText

var formats = []Format{FormatJSON, FormatText}

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	}

	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Formats yields the names of the defined formats.
func Formats() iter.Seq[string] {
	return names(formats)
}

// ParseFormat returns the format named by s, case-insensitively.
// Unknown names yield [DefaultFormat].
func ParseFormat(s string) Format {
	s = strings.TrimSpace(s)
	if i := slices.IndexFunc(formats, func(f Format) bool {
		return strings.EqualFold(f.String(), s)
	}); i >= 0 {
		return formats[i]
	}

	return DefaultFormat
}

func names[T interface{ String() string }](list []T) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, v := range list {
			if !yield(v.String()) {
				return
			}
		}
	}
}
