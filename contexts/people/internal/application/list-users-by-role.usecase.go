package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/roster/app"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

var ErrListUsersByRoleFailed = errors.New("list users by role failed")

func NewListUsersByRoleQueryHandler(repo user.Repository) app.Query[ListUsersByRoleQuery, ListUsersResponse] {
	return &listUsersByRoleQueryHandler{repo: repo}
}

type listUsersByRoleQueryHandler struct {
	repo user.Repository
}

type ListUsersByRoleQuery struct {
	Role user.Role `validate:"oneof=user admin guest"`
}

func (h *listUsersByRoleQueryHandler) H(ctx context.Context, query ListUsersByRoleQuery) (ListUsersResponse, error) {
	users, err := h.repo.FindByRole(ctx, query.Role)
	if err != nil {
		return ListUsersResponse{}, fmt.Errorf("%w: %w", ErrListUsersByRoleFailed, err)
	}

	return ListUsersResponse{Users: users}, nil
}
