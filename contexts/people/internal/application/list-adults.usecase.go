package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/roster/app"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

var ErrListAdultsFailed = errors.New("list adults failed")

func NewListAdultsQueryHandler(repo user.Repository) app.Query[ListAdultsQuery, ListUsersResponse] {
	return &listAdultsQueryHandler{repo: repo}
}

type listAdultsQueryHandler struct {
	repo user.Repository
}

type ListAdultsQuery struct{}

func (h *listAdultsQueryHandler) H(ctx context.Context, _ ListAdultsQuery) (ListUsersResponse, error) {
	adults, err := h.repo.FilterAdults(ctx)
	if err != nil {
		return ListUsersResponse{}, fmt.Errorf("%w: %w", ErrListAdultsFailed, err)
	}

	return ListUsersResponse{Users: adults}, nil
}
