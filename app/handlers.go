// Package app provides common decorators for use cases in the application layer.
package app

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/roster/alog"
)

// Request creates something and returns what the caller needs to refer to it, e.g. the ID of a new user.
type Request[Req any, Res any] interface {
	H(ctx context.Context, req Req) (Res, error)
}

// Command changes state and returns nothing but an error, e.g. removing a user.
type Command[C any] interface {
	H(ctx context.Context, cmd C) error
}

// Query only reads, e.g. listing users or computing their average age.
type Query[Q any, Res any] interface {
	H(ctx context.Context, query Q) (Res, error)
}

// Decorators bundle what every use case of a Context gets wrapped in.
// A nil provider or logger falls back to its noop version.
// Validate is optional, if it is nil inputs reach the use case unchecked.
type Decorators struct {
	TraceProvider trace.TracerProvider
	MeterProvider metric.MeterProvider
	Logger        alog.Logger
	Validate      *validator.Validate
}

func (d Decorators) withDefaults() Decorators {
	if d.TraceProvider == nil {
		d.TraceProvider = tracenoop.NewTracerProvider()
	}

	if d.MeterProvider == nil {
		d.MeterProvider = metricnoop.NewMeterProvider()
	}

	if d.Logger == nil {
		d.Logger = alog.NewNoop()
	}

	return d
}

// NewInstrumentedRequest wraps req in the order: trace, meter, log, validate.
// A rejected input is still traced, metered and logged.
func NewInstrumentedRequest[Req any, Res any](d Decorators, req Request[Req, Res]) Request[Req, Res] {
	d = d.withDefaults()

	if d.Validate != nil {
		req = NewValidatedRequest(d.Validate, req)
	}

	return NewTracedRequest(d.TraceProvider, NewMeteredRequest(d.MeterProvider, NewLoggedRequest(d.Logger, req)))
}

// NewInstrumentedCommand wraps cmd the same way as NewInstrumentedRequest.
func NewInstrumentedCommand[C any](d Decorators, cmd Command[C]) Command[C] {
	d = d.withDefaults()

	if d.Validate != nil {
		cmd = NewValidatedCommand(d.Validate, cmd)
	}

	return NewTracedCommand(d.TraceProvider, NewMeteredCommand(d.MeterProvider, NewLoggedCommand(d.Logger, cmd)))
}

// NewInstrumentedQuery wraps query the same way as NewInstrumentedRequest.
func NewInstrumentedQuery[Q any, Res any](d Decorators, query Query[Q, Res]) Query[Q, Res] {
	d = d.withDefaults()

	if d.Validate != nil {
		query = NewValidatedQuery(d.Validate, query)
	}

	return NewTracedQuery(d.TraceProvider, NewMeteredQuery(d.MeterProvider, NewLoggedQuery(d.Logger, query)))
}

// commandName extracts a printable name from cmd in the format of: context.package.structName.
// If cmd is not defined inside a Context, the format is: package.structName.
//
// The use case function can not be used, as it is anonymous / a closure returned by the use case constructor.
func commandName(cmd any) string {
	pkgPath := reflect.TypeOf(cmd).PkgPath()

	// example: github.com/go-arrower/roster/contexts/people/internal/application
	// take string after /contexts/ and then take string before /internal/
	pkg0 := strings.Split(pkgPath, "/contexts/")

	hasContext := len(pkg0) == 2 //nolint:mnd
	if hasContext {
		pkg1 := strings.Split(pkg0[1], "/internal/")
		if len(pkg1) == 2 { //nolint:mnd
			context := pkg1[0]

			return fmt.Sprintf("%s.%T", context, cmd)
		}
	}

	return fmt.Sprintf("%T", cmd)
}
