package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	ctx2 "github.com/go-arrower/roster/ctx"
)

// ErrInvalidInput is returned if a use case input fails validation.
// It wraps the validator.ValidationErrors, so the failing fields can still be inspected.
var ErrInvalidInput = errors.New("invalid input")

const CtxValidated ctx2.CTXKey = "roster.validated"

// PassedValidation reports if the input of the current use case got validated by one of the decorators.
func PassedValidation(ctx context.Context) bool {
	if v, ok := ctx.Value(CtxValidated).(bool); ok {
		return v
	}

	return false
}

// defaultValidate is shared by all decorators created without a validator.
// Tags like `required` also apply to nested struct fields.
var defaultValidate = sync.OnceValue(func() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
})

type validation struct {
	validate *validator.Validate
}

func newValidation(validate *validator.Validate) validation {
	if validate == nil {
		validate = defaultValidate()
	}

	return validation{validate: validate}
}

// check validates in with ctx, so validations registered with RegisterValidationCtx can use it.
// On success the returned ctx is marked as validated.
func (v validation) check(ctx context.Context, in any) (context.Context, error) {
	if err := v.validate.StructCtx(ctx, in); err != nil {
		return ctx, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return context.WithValue(ctx, CtxValidated, true), nil
}

// NewValidatedRequest rejects every req that does not satisfy its `validate` tags.
// If validate is nil, a default validator is used.
func NewValidatedRequest[Req any, Res any](validate *validator.Validate, req Request[Req, Res]) Request[Req, Res] {
	return &requestValidatingDecorator[Req, Res]{
		validation: newValidation(validate),
		base:       req,
	}
}

type requestValidatingDecorator[Req any, Res any] struct {
	validation
	base Request[Req, Res]
}

func (d *requestValidatingDecorator[Req, Res]) H(ctx context.Context, req Req) (Res, error) { //nolint:ireturn // valid use of generics
	ctx, err := d.check(ctx, req)
	if err != nil {
		return *new(Res), err
	}

	return d.base.H(ctx, req) //nolint:wrapcheck // decorate but not change anything
}

func NewValidatedCommand[C any](validate *validator.Validate, cmd Command[C]) Command[C] {
	return &commandValidatingDecorator[C]{
		validation: newValidation(validate),
		base:       cmd,
	}
}

type commandValidatingDecorator[C any] struct {
	validation
	base Command[C]
}

func (d *commandValidatingDecorator[C]) H(ctx context.Context, cmd C) error {
	ctx, err := d.check(ctx, cmd)
	if err != nil {
		return err
	}

	return d.base.H(ctx, cmd) //nolint:wrapcheck // decorate but not change anything
}

func NewValidatedQuery[Q any, Res any](validate *validator.Validate, query Query[Q, Res]) Query[Q, Res] {
	return &queryValidatingDecorator[Q, Res]{
		validation: newValidation(validate),
		base:       query,
	}
}

type queryValidatingDecorator[Q any, Res any] struct {
	validation
	base Query[Q, Res]
}

func (d *queryValidatingDecorator[Q, Res]) H(ctx context.Context, query Q) (Res, error) { //nolint:ireturn // valid use of generics
	ctx, err := d.check(ctx, query)
	if err != nil {
		return *new(Res), err
	}

	return d.base.H(ctx, query) //nolint:wrapcheck // decorate but not change anything
}
