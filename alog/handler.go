package alog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LoggerOpt allows to initialise a logger with custom options.
type LoggerOpt func(handler *rosterHandler)

// WithHandler adds a slog.Handler to be logged to.
// You can set as many as you want.
func WithHandler(h slog.Handler) LoggerOpt {
	return func(l *rosterHandler) {
		l.handlers = append(l.handlers, h)
	}
}

// WithLevel initialises the logger with a starting level.
// To change the level at runtime use LevelLogger.SetLevel:
// Unwrap(logger).SetLevel(LevelInfo).
func WithLevel(level slog.Level) LoggerOpt {
	return func(l *rosterHandler) {
		l.level.Set(level)
	}
}

// New returns a production ready logger.
//
// If no options are given it creates a default handler, logging JSON to Stderr.
// Otherwise, use WithHandler to set your own loggers.
func New(opts ...LoggerOpt) *slog.Logger {
	return slog.New(newRosterHandler(opts...))
}

// NewDevelopment returns a logger ready for local development purposes.
// It logs human-readable text to w, starting at slog.LevelDebug.
func NewDevelopment(w io.Writer) *slog.Logger {
	return New(
		WithLevel(slog.LevelDebug),
		WithHandler(slog.NewTextHandler(w, getDebugHandlerOptions())),
	)
}

// newRosterHandler does not output anything directly and relies on other slog.Handlers to do so.
// If no Handlers are provided via WithHandler, a default JSON handler logs to os.Stderr.
func newRosterHandler(opts ...LoggerOpt) *rosterHandler {
	handler := &rosterHandler{
		level:    &slog.LevelVar{},
		handlers: []slog.Handler{},
	}

	handler.level.Set(slog.LevelInfo)

	for _, opt := range opts {
		opt(handler)
	}

	hasCustomHandlers := len(handler.handlers) != 0
	if !hasCustomHandlers {
		handler.handlers = []slog.Handler{slog.NewJSONHandler(os.Stderr, getDefaultHandlerOptions())}
	}

	return handler
}

// rosterHandler logs to multiple handlers and does the lifting for observability:
// each record is correlated with the span active in the context.
type rosterHandler struct {
	// level reports the minimum record level that will be logged.
	// It is shared by all handlers derived via WithAttrs and WithGroup.
	// The level of individual handlers set via WithHandler is ignored.
	level *slog.LevelVar

	// handlers is a list which all get called with the same log message.
	handlers []slog.Handler
}

var (
	_ slog.Handler = (*rosterHandler)(nil)
	_ LevelLogger  = (*rosterHandler)(nil)
)

func (l *rosterHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= l.level.Level()
}

func (l *rosterHandler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)

	record = addTraceAndSpanIDsToLogs(span, record)
	record.AddAttrs(FromContext(ctx)...)

	addLogsToActiveSpanAsEvent(span, getAttrsFromRecord(record), record)

	var retErr error

	for _, h := range l.handlers {
		err := h.Handle(ctx, record.Clone())
		retErr = errors.Join(retErr, err)
	}

	return retErr
}

func (l *rosterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}

	return &rosterHandler{level: l.level, handlers: handlers}
}

func (l *rosterHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(l.handlers))

	for i, h := range l.handlers {
		handlers[i] = h.WithGroup(name)
	}

	return &rosterHandler{level: l.level, handlers: handlers}
}

// SetLevel changes the level for all handlers set with WithHandler().
// Even the ones "copied" via any WithX method.
func (l *rosterHandler) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Level returns the log level of the handler.
func (l *rosterHandler) Level() slog.Level {
	return l.level.Level()
}

func (l *rosterHandler) NumHandlers() int {
	return len(l.handlers)
}

func addTraceAndSpanIDsToLogs(span trace.Span, record slog.Record) slog.Record {
	sCtx := span.SpanContext()
	attrs := make([]slog.Attr, 0, 2) //nolint:mnd // trace and span id

	if sCtx.HasTraceID() {
		attrs = append(attrs, slog.String("traceID", sCtx.TraceID().String()))
	}

	if sCtx.HasSpanID() {
		attrs = append(attrs, slog.String("spanID", sCtx.SpanID().String()))
	}

	if len(attrs) > 0 {
		record.AddAttrs(attrs...)
	}

	return record
}

func addLogsToActiveSpanAsEvent(span trace.Span, attrs []attribute.KeyValue, record slog.Record) {
	span.AddEvent("log", trace.WithAttributes(attrs...))

	if record.Level >= slog.LevelError {
		span.SetStatus(codes.Error, record.Message)
	}
}

func getAttrsFromRecord(record slog.Record) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, record.NumAttrs()+2) //nolint:mnd // severity and message

	attrs = append(attrs,
		attribute.String("log.severity", record.Level.String()),
		attribute.String("log.message", record.Message),
	)

	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, attribute.String(a.Key, a.Value.String()))

		return true // process next attr
	})

	return attrs
}

// LevelLogger offers additional control over the logger at run time.
// Unwrap a logger to get access to this features.
type LevelLogger interface {
	SetLevel(level slog.Level)
	Level() slog.Level
	NumHandlers() int
}

// Unwrap unwraps the given logger and returns a LevelLogger.
// In case of a logger not created by this package, it returns nil.
func Unwrap(logger Logger) LevelLogger { //nolint:ireturn // interface required to return a TestLogger and rosterHandler
	if l, ok := logger.(*TestLogger); ok {
		return l
	}

	sl, ok := logger.(*slog.Logger)
	if !ok {
		return nil
	}

	if l, ok := sl.Handler().(*rosterHandler); ok {
		return l
	}

	return nil
}

func getDefaultHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   true,
		Level:       LevelDebug, // the rosterHandler's level is used for all handlers.
		ReplaceAttr: MapLogLevelsToName,
	}
}

// getDebugHandlerOptions is to keep the log output more readable, by removing not essential keys.
func getDebugHandlerOptions() *slog.HandlerOptions {
	opt := getDefaultHandlerOptions()
	opt.AddSource = false

	return opt
}
