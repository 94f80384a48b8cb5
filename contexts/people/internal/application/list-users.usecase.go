package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/roster/app"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

var ErrListUsersFailed = errors.New("list users failed")

func NewListUsersQueryHandler(repo user.Repository) app.Query[ListUsersQuery, ListUsersResponse] {
	return &listUsersQueryHandler{repo: repo}
}

type listUsersQueryHandler struct {
	repo user.Repository
}

type (
	ListUsersQuery    struct{}
	ListUsersResponse struct {
		// Users are in the order they got created.
		Users []user.User
	}
)

func (h *listUsersQueryHandler) H(ctx context.Context, _ ListUsersQuery) (ListUsersResponse, error) {
	users, err := h.repo.FindAll(ctx)
	if err != nil {
		return ListUsersResponse{}, fmt.Errorf("%w: %w", ErrListUsersFailed, err)
	}

	return ListUsersResponse{Users: users}, nil
}
