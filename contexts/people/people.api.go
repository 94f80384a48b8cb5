// Package people is the intraprocess API of what this Context is exposing to other Contexts to use.
package people

import (
	"context"

	"github.com/go-arrower/roster/contexts/people/internal/application"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

// API is the api of the people Context.
type API interface {
	CreateUser(ctx context.Context, name string, email string, age int, role Role) (ID, error)
	RemoveUser(ctx context.Context, id ID) error

	User(ctx context.Context, id ID) (User, error)
	Users(ctx context.Context) ([]User, error)
	UsersByRole(ctx context.Context, role Role) ([]User, error)
	Adults(ctx context.Context) ([]User, error)
	AverageAge(ctx context.Context) (float64, error)
}

type (
	User = user.User
	ID   = user.ID
	Role = user.Role
)

const (
	RoleUser  = user.RoleUser
	RoleAdmin = user.RoleAdmin
	RoleGuest = user.RoleGuest
)

var (
	// ErrValidation is returned if the input violates the constraints of a User.
	ErrValidation = user.ErrValidation
	// ErrCapacity is returned if no more users can be created.
	ErrCapacity     = user.ErrCapacity
	ErrUserNotFound = application.ErrUserNotFound
)
