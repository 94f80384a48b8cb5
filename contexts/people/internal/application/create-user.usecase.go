package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/roster/app"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

var ErrCreateUserFailed = errors.New("create user failed")

func NewCreateUserRequestHandler(repo user.Repository) app.Request[CreateUserRequest, CreateUserResponse] {
	return &createUserRequestHandler{repo: repo}
}

type createUserRequestHandler struct {
	repo user.Repository
}

type (
	CreateUserRequest struct {
		Name  string    `validate:"required"`
		Email string    `validate:"required"`
		Age   int       `validate:"gte=0,lte=150"`
		Role  user.Role `validate:"omitempty,oneof=user admin guest"`
	}
	CreateUserResponse struct {
		ID user.ID
	}
)

func (h *createUserRequestHandler) H(ctx context.Context, req CreateUserRequest) (CreateUserResponse, error) {
	var opts []user.Option
	if req.Role != "" {
		opts = append(opts, user.WithRole(req.Role))
	}

	usr, err := user.New(req.Name, req.Email, req.Age, opts...)
	if err != nil {
		return CreateUserResponse{}, fmt.Errorf("%w: %w", ErrCreateUserFailed, err)
	}

	id, err := h.repo.Add(ctx, usr)
	if err != nil {
		return CreateUserResponse{}, fmt.Errorf("%w: could not add user: %w", ErrCreateUserFailed, err)
	}

	return CreateUserResponse{ID: id}, nil
}
