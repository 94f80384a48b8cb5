package application

import (
	"errors"

	"github.com/go-arrower/roster/app"
)

// ErrUserNotFound is returned by the use cases addressing a single user that does not exist.
var ErrUserNotFound = errors.New("user not found")

// App is a dependency injection container.
type App struct {
	CreateUser      app.Request[CreateUserRequest, CreateUserResponse]
	GetUser         app.Query[GetUserQuery, GetUserResponse]
	ListUsers       app.Query[ListUsersQuery, ListUsersResponse]
	ListUsersByRole app.Query[ListUsersByRoleQuery, ListUsersResponse]
	ListAdults      app.Query[ListAdultsQuery, ListUsersResponse]
	AverageAge      app.Query[AverageAgeQuery, AverageAgeResponse]
	RemoveUser      app.Command[RemoveUserCommand]
}
