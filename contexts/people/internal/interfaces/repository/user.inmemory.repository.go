package repository

import (
	"context"
	"fmt"

	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
	"github.com/go-arrower/roster/repository"
)

// DefaultCapacity is the number of users a repository holds, if not configured otherwise.
const DefaultCapacity = 100

func NewUserMemoryRepository(opts ...repository.Option) *UserMemoryRepository {
	opts = append([]repository.Option{repository.WithCapacity(DefaultCapacity)}, opts...)

	return &UserMemoryRepository{
		MemoryRepository: repository.NewMemoryRepository[user.User, user.ID](opts...),
	}
}

type UserMemoryRepository struct {
	*repository.MemoryRepository[user.User, user.ID]
}

var _ user.Repository = (*UserMemoryRepository)(nil)

// Update validates usr again, as the caller had the chance to change it.
// CreatedAt is immutable and always kept from the stored user.
func (repo *UserMemoryRepository) Update(ctx context.Context, usr user.User) error {
	if err := usr.Validate(); err != nil {
		return fmt.Errorf("could not update user %d: %w", usr.ID, err)
	}

	err := repo.UpdateFunc(ctx, usr.ID, func(stored user.User) (user.User, error) {
		usr.CreatedAt = stored.CreatedAt

		return usr, nil
	})
	if err != nil {
		return fmt.Errorf("could not update user %d: %w", usr.ID, err)
	}

	return nil
}

func (repo *UserMemoryRepository) FindByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	return repo.FindBy(ctx, func(u user.User) bool { //nolint:wrapcheck // keep the error of the embedded repository
		return u.Role == role
	})
}

// FilterAdults returns all adult users in the order they got added.
func (repo *UserMemoryRepository) FilterAdults(ctx context.Context) ([]user.User, error) {
	return repo.FindBy(ctx, user.User.IsAdult) //nolint:wrapcheck // keep the error of the embedded repository
}

// AverageAge returns the mean age of all users. It is 0 if there are no users.
func (repo *UserMemoryRepository) AverageAge(ctx context.Context) (float64, error) {
	var (
		sum   int
		count int
	)

	for u, err := range repo.AllIter(ctx).Next() {
		if err != nil {
			return 0, fmt.Errorf("could not calculate average age: %w", err)
		}

		sum += u.Age
		count++
	}

	if count == 0 {
		return 0, nil
	}

	return float64(sum) / float64(count), nil
}
