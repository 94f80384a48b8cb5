package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/roster/app"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

var ErrGetUserFailed = errors.New("get user failed")

func NewGetUserQueryHandler(repo user.Repository) app.Query[GetUserQuery, GetUserResponse] {
	return &getUserQueryHandler{repo: repo}
}

type getUserQueryHandler struct {
	repo user.Repository
}

type (
	GetUserQuery struct {
		ID user.ID `validate:"gt=0"`
	}
	GetUserResponse struct {
		User user.User
	}
)

func (h *getUserQueryHandler) H(ctx context.Context, query GetUserQuery) (GetUserResponse, error) {
	usr, err := h.repo.FindByID(ctx, query.ID)
	if errors.Is(err, user.ErrNotFound) {
		return GetUserResponse{}, fmt.Errorf("%w: %w: %d", ErrGetUserFailed, ErrUserNotFound, query.ID)
	}

	if err != nil {
		return GetUserResponse{}, fmt.Errorf("%w: %w", ErrGetUserFailed, err)
	}

	return GetUserResponse{User: usr}, nil
}
