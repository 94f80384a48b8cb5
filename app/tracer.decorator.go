package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startUseCaseSpan opens the span every traced use case runs in.
func startUseCaseSpan(ctx context.Context, tracer trace.Tracer, cmdName string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "usecase", //nolint:spancheck // the caller ends the span
		trace.WithAttributes(attribute.String("command", cmdName)),
	)
}

func endUseCaseSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}

func NewTracedRequest[Req any, Res any](traceProvider trace.TracerProvider, req Request[Req, Res]) Request[Req, Res] {
	return &requestTracingDecorator[Req, Res]{
		tracer: traceProvider.Tracer(instrumentationName),
		base:   req,
	}
}

type requestTracingDecorator[Req any, Res any] struct {
	tracer trace.Tracer
	base   Request[Req, Res]
}

func (d *requestTracingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn // valid use of generics
	newCtx, span := startUseCaseSpan(ctx, d.tracer, commandName(req))

	result, err := d.base.H(newCtx, req)
	endUseCaseSpan(span, err)

	return result, err //nolint:wrapcheck // decorate but not change anything
}

func NewTracedCommand[C any](traceProvider trace.TracerProvider, cmd Command[C]) Command[C] {
	return &commandTracingDecorator[C]{
		tracer: traceProvider.Tracer(instrumentationName),
		base:   cmd,
	}
}

type commandTracingDecorator[C any] struct {
	tracer trace.Tracer
	base   Command[C]
}

func (d *commandTracingDecorator[C]) H(ctx context.Context, cmd C) error {
	newCtx, span := startUseCaseSpan(ctx, d.tracer, commandName(cmd))

	err := d.base.H(newCtx, cmd)
	endUseCaseSpan(span, err)

	return err //nolint:wrapcheck // decorate but not change anything
}

func NewTracedQuery[Q any, Res any](traceProvider trace.TracerProvider, query Query[Q, Res]) Query[Q, Res] {
	return &queryTracingDecorator[Q, Res]{
		tracer: traceProvider.Tracer(instrumentationName),
		base:   query,
	}
}

type queryTracingDecorator[Q any, Res any] struct {
	tracer trace.Tracer
	base   Query[Q, Res]
}

func (d *queryTracingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn // valid use of generics
	newCtx, span := startUseCaseSpan(ctx, d.tracer, commandName(query))

	result, err := d.base.H(newCtx, query)
	endUseCaseSpan(span, err)

	return result, err //nolint:wrapcheck // decorate but not change anything
}
