package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/roster/app"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

var ErrRemoveUserFailed = errors.New("remove user failed")

func NewRemoveUserCommandHandler(repo user.Repository) app.Command[RemoveUserCommand] {
	return &removeUserCommandHandler{repo: repo}
}

type removeUserCommandHandler struct {
	repo user.Repository
}

type RemoveUserCommand struct {
	ID user.ID `validate:"gt=0"`
}

func (h *removeUserCommandHandler) H(ctx context.Context, cmd RemoveUserCommand) error {
	if !h.repo.Remove(ctx, cmd.ID) {
		return fmt.Errorf("%w: %w: %d", ErrRemoveUserFailed, ErrUserNotFound, cmd.ID)
	}

	return nil
}
