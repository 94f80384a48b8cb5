package app

import (
	"context"
	"errors"
)

//
// This file contains convenience helpers you can use to easier test
// your calling code relying on this usecase pattern.
//

var ErrUseCaseFailed = errors.New("usecase failed")

func TestSuccessRequestHandler[Req any, Res any]() Request[Req, Res] {
	return &testSuccessRequestHandler[Req, Res]{}
}

type testSuccessRequestHandler[Req any, Res any] struct{}

func (h *testSuccessRequestHandler[Req, Res]) H(_ context.Context, _ Req) (Res, error) { //nolint:ireturn // valid use of generics
	var result Res

	return result, nil
}

func TestFailureRequestHandler[Req any, Res any]() Request[Req, Res] {
	return &testFailureRequestHandler[Req, Res]{}
}

type testFailureRequestHandler[Req any, Res any] struct{}

func (h *testFailureRequestHandler[Req, Res]) H(_ context.Context, _ Req) (Res, error) { //nolint:ireturn // valid use of generics
	var result Res

	return result, ErrUseCaseFailed
}

func TestSuccessCommandHandler[C any]() Command[C] {
	return &testSuccessCommandHandler[C]{}
}

type testSuccessCommandHandler[C any] struct{}

func (h *testSuccessCommandHandler[C]) H(_ context.Context, _ C) error {
	return nil
}

func TestFailureCommandHandler[C any]() Command[C] {
	return &testFailureCommandHandler[C]{}
}

type testFailureCommandHandler[C any] struct{}

func (h *testFailureCommandHandler[C]) H(_ context.Context, _ C) error {
	return ErrUseCaseFailed
}

func TestSuccessQueryHandler[Q any, Res any]() Query[Q, Res] {
	return &testSuccessQueryHandler[Q, Res]{}
}

type testSuccessQueryHandler[Q any, Res any] struct{}

func (h *testSuccessQueryHandler[Q, Res]) H(_ context.Context, _ Q) (Res, error) { //nolint:ireturn // valid use of generics
	var result Res

	return result, nil
}

func TestFailureQueryHandler[Q any, Res any]() Query[Q, Res] {
	return &testFailureQueryHandler[Q, Res]{}
}

type testFailureQueryHandler[Q any, Res any] struct{}

func (h *testFailureQueryHandler[Q, Res]) H(_ context.Context, _ Q) (Res, error) { //nolint:ireturn // valid use of generics
	var result Res

	return result, ErrUseCaseFailed
}

// TestRequestHandler turns a function into a Request, so a test can assert on what the handler receives.
func TestRequestHandler[Req any, Res any](handler func(ctx context.Context, req Req) (Res, error)) Request[Req, Res] {
	return &testRequestHandler[Req, Res]{handler: handler}
}

type testRequestHandler[Req any, Res any] struct {
	handler func(ctx context.Context, req Req) (Res, error)
}

func (h *testRequestHandler[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn // valid use of generics
	return h.handler(ctx, req)
}

func TestCommandHandler[C any](handler func(ctx context.Context, cmd C) error) Command[C] {
	return &testCommandHandler[C]{handler: handler}
}

type testCommandHandler[C any] struct {
	handler func(ctx context.Context, cmd C) error
}

func (h *testCommandHandler[C]) H(ctx context.Context, cmd C) error {
	return h.handler(ctx, cmd)
}

func TestQueryHandler[Q any, Res any](handler func(ctx context.Context, query Q) (Res, error)) Query[Q, Res] {
	return &testQueryHandler[Q, Res]{handler: handler}
}

type testQueryHandler[Q any, Res any] struct {
	handler func(ctx context.Context, query Q) (Res, error)
}

func (h *testQueryHandler[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn // valid use of generics
	return h.handler(ctx, query)
}
