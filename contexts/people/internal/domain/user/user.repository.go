package user

import (
	"context"

	"github.com/go-arrower/roster/repository"
)

var (
	ErrNotFound = repository.ErrNotFound
	ErrCapacity = repository.ErrCapacity
)

// Repository manages the users. The IDs it assigns are never reused, even after removal.
type Repository interface {
	Add(ctx context.Context, user User) (ID, error)
	Update(ctx context.Context, user User) error
	Remove(ctx context.Context, id ID) bool

	FindByID(ctx context.Context, id ID) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindByRole(ctx context.Context, role Role) ([]User, error)
	Count(ctx context.Context) (int, error)

	FilterAdults(ctx context.Context) ([]User, error)
	AverageAge(ctx context.Context) (float64, error)

	Clear(ctx context.Context) error
}
