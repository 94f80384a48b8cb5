// Package alog is the logger used throughout roster.
// It is a thin layer over log/slog that correlates every record with the active trace.
package alog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	ctx2 "github.com/go-arrower/roster/ctx"
)

// Logger interface is a subset of slog.Logger, with the aim to
// encourage the use of the methods offering context.Context, so that tracing information can be correlated.
type Logger interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
	LogAttrs(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr)
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	With(args ...any) *slog.Logger
	WithGroup(name string) *slog.Logger
}

const (
	// LevelInfo is used to see what is going on inside roster.
	LevelInfo = slog.Level(-8)

	// LevelDebug is used by roster developers, if you really want to know what is going on.
	LevelDebug = slog.Level(-12)
)

// MapLogLevelsToName replaces the default name of a custom log level with a speaking name for the roster levels.
func MapLogLevelsToName(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		level, _ := attr.Value.Any().(slog.Level)

		levelLabel, exists := levelNames()[level]
		if !exists {
			levelLabel = level.String()
		}

		attr.Value = slog.StringValue(levelLabel)
	}

	return attr
}

func levelNames() map[slog.Leveler]string {
	return map[slog.Leveler]string{
		LevelInfo:  "ROSTER:INFO",
		LevelDebug: "ROSTER:DEBUG",
	}
}

// ParseLevel returns the level for a name as used in the configuration.
// Next to the slog names it understands the roster levels, e.g. "roster:debug".
func ParseLevel(name string) (slog.Level, error) {
	for level, label := range levelNames() {
		if strings.EqualFold(label, name) {
			return level.Level(), nil
		}
	}

	var level slog.Level

	err := level.UnmarshalText([]byte(name))
	if err != nil {
		return 0, fmt.Errorf("unknown log level %q: %w", name, err)
	}

	return level, nil
}

// Error returns an attribute for the error, so all errors are logged under the same key.
func Error(err error) slog.Attr {
	return slog.String("err", err.Error())
}

const ctxAttr ctx2.CTXKey = "roster.alog.attr"

// AddAttr adds a single attribute to ctx. All attrs in CTX will be added to the output by the logger.
func AddAttr(ctx context.Context, attr slog.Attr) context.Context {
	return AddAttrs(ctx, attr)
}

// AddAttrs adds multiple attributes to ctx. All attrs in CTX will be added to the output by the logger.
func AddAttrs(ctx context.Context, newAttrs ...slog.Attr) context.Context {
	attrs := FromContext(ctx)

	// copy, so a derived ctx does not change the attrs of its parent
	all := make([]slog.Attr, 0, len(attrs)+len(newAttrs))
	all = append(all, attrs...)
	all = append(all, newAttrs...)

	return context.WithValue(ctx, ctxAttr, all)
}

// ClearAttrs removes all attributes from ctx.
func ClearAttrs(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxAttr, []slog.Attr{})
}

// FromContext returns the attributes stored in ctx. It never returns nil.
func FromContext(ctx context.Context) []slog.Attr {
	if attrs, ok := ctx.Value(ctxAttr).([]slog.Attr); ok {
		return attrs
	}

	return []slog.Attr{}
}
