package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
	"github.com/go-arrower/roster/contexts/people/internal/interfaces/repository"
)

var (
	ctx = context.Background()

	errRepository = errors.New("repository failure")
)

// repoWithUsers returns a repository holding one user per given age, with ids starting at 1.
func repoWithUsers(t *testing.T, ages ...int) *repository.UserMemoryRepository {
	t.Helper()

	repo := repository.NewUserMemoryRepository()

	for _, age := range ages {
		usr, err := user.New(gofakeit.Name(), gofakeit.Email(), age)
		require.NoError(t, err)

		_, err = repo.Add(ctx, usr)
		require.NoError(t, err)
	}

	return repo
}

// failingRepository fails every read, all other methods are not implemented.
type failingRepository struct {
	user.Repository
}

func (failingRepository) FindByID(context.Context, user.ID) (user.User, error) {
	return user.User{}, errRepository
}

func (failingRepository) FindAll(context.Context) ([]user.User, error) {
	return nil, errRepository
}

func (failingRepository) FindByRole(context.Context, user.Role) ([]user.User, error) {
	return nil, errRepository
}

func (failingRepository) FilterAdults(context.Context) ([]user.User, error) {
	return nil, errRepository
}

func (failingRepository) AverageAge(context.Context) (float64, error) {
	return 0, errRepository
}
