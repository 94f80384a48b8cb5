package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "roster.application"

// useCaseMeter records how often a use case ran and how long it took.
type useCaseMeter struct {
	counter  metric.Int64Counter
	duration metric.Float64Histogram
}

func newUseCaseMeter(meterProvider metric.MeterProvider) useCaseMeter {
	meter := meterProvider.Meter(instrumentationName)

	counter, _ := meter.Int64Counter("usecases",
		metric.WithDescription("number of executed use cases"),
	)
	duration, _ := meter.Float64Histogram("usecases_duration_seconds",
		metric.WithDescription("duration of executed use cases"),
	)

	return useCaseMeter{counter: counter, duration: duration}
}

// record is meant to be deferred with the start time of the use case.
func (m useCaseMeter) record(ctx context.Context, cmdName string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	opt := metric.WithAttributes(
		attribute.String("command", cmdName),
		attribute.String("status", status),
	)

	m.counter.Add(ctx, 1, opt)
	m.duration.Record(ctx, time.Since(start).Seconds(), opt)
}

func NewMeteredRequest[Req any, Res any](meterProvider metric.MeterProvider, req Request[Req, Res]) Request[Req, Res] {
	return &requestMeteringDecorator[Req, Res]{
		meter: newUseCaseMeter(meterProvider),
		base:  req,
	}
}

type requestMeteringDecorator[Req any, Res any] struct {
	meter useCaseMeter
	base  Request[Req, Res]
}

func (d *requestMeteringDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn // valid use of generics
	start := time.Now()

	result, err := d.base.H(ctx, req)
	d.meter.record(ctx, commandName(req), start, err)

	return result, err //nolint:wrapcheck // decorate but not change anything
}

func NewMeteredCommand[C any](meterProvider metric.MeterProvider, cmd Command[C]) Command[C] {
	return &commandMeteringDecorator[C]{
		meter: newUseCaseMeter(meterProvider),
		base:  cmd,
	}
}

type commandMeteringDecorator[C any] struct {
	meter useCaseMeter
	base  Command[C]
}

func (d *commandMeteringDecorator[C]) H(ctx context.Context, cmd C) error {
	start := time.Now()

	err := d.base.H(ctx, cmd)
	d.meter.record(ctx, commandName(cmd), start, err)

	return err //nolint:wrapcheck // decorate but not change anything
}

func NewMeteredQuery[Q any, Res any](meterProvider metric.MeterProvider, query Query[Q, Res]) Query[Q, Res] {
	return &queryMeteringDecorator[Q, Res]{
		meter: newUseCaseMeter(meterProvider),
		base:  query,
	}
}

type queryMeteringDecorator[Q any, Res any] struct {
	meter useCaseMeter
	base  Query[Q, Res]
}

func (d *queryMeteringDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn // valid use of generics
	start := time.Now()

	result, err := d.base.H(ctx, query)
	d.meter.record(ctx, commandName(query), start, err)

	return result, err //nolint:wrapcheck // decorate but not change anything
}
