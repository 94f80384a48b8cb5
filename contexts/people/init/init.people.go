// Package init is the context's startup API.
//
// Put all initialisations here.
// For example, load context-specific configuration and setup dependency injection.
package init

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/go-arrower/roster"
	"github.com/go-arrower/roster/alog"
	"github.com/go-arrower/roster/app"
	"github.com/go-arrower/roster/contexts/people"
	"github.com/go-arrower/roster/contexts/people/internal/application"
	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
	"github.com/go-arrower/roster/contexts/people/internal/interfaces/repository"
	repo "github.com/go-arrower/roster/repository"
)

const contextName = "people"

func NewPeopleContext(ctx context.Context, di *roster.Container) (*PeopleContext, error) {
	if di == nil {
		return nil, fmt.Errorf("could not initialise context people: %w", roster.ErrMissingDependency)
	}

	if err := di.EnsureAllDependenciesPresent(); err != nil {
		return nil, fmt.Errorf("could not initialise context people: %w", err)
	}

	logger := di.Logger.With(slog.String("context", contextName))

	users := repository.NewUserMemoryRepository(repo.WithCapacity(di.Config.People.Capacity))

	pc := &PeopleContext{
		logger: logger,
		users:  users,
		app:    setupApplication(di, logger, users),
	}

	logger.LogAttrs(ctx, alog.LevelInfo, "context people initialised",
		slog.Int("capacity", di.Config.People.Capacity),
	)

	return pc, nil
}

// PeopleContext owns all users. They live as long as the context.
type PeopleContext struct {
	logger alog.Logger
	users  user.Repository
	app    application.App
}

var _ people.API = (*PeopleContext)(nil)

// Shutdown drops all users.
func (c *PeopleContext) Shutdown(ctx context.Context) error {
	count, err := c.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("could not shutdown context people: %w", err)
	}

	c.logger.LogAttrs(ctx, alog.LevelInfo, "shutting down context people",
		slog.Int("users", count),
	)

	if err := c.users.Clear(ctx); err != nil {
		return fmt.Errorf("could not shutdown context people: %w", err)
	}

	return nil
}

func (c *PeopleContext) CreateUser(
	ctx context.Context,
	name string,
	email string,
	age int,
	role people.Role,
) (people.ID, error) {
	res, err := c.app.CreateUser.H(ctx, application.CreateUserRequest{
		Name:  name,
		Email: email,
		Age:   age,
		Role:  role,
	})
	if err != nil {
		return 0, asValidationError(err)
	}

	return res.ID, nil
}

func (c *PeopleContext) RemoveUser(ctx context.Context, id people.ID) error {
	return asValidationError(c.app.RemoveUser.H(ctx, application.RemoveUserCommand{ID: id}))
}

func (c *PeopleContext) User(ctx context.Context, id people.ID) (people.User, error) {
	res, err := c.app.GetUser.H(ctx, application.GetUserQuery{ID: id})
	if err != nil {
		return people.User{}, asValidationError(err)
	}

	return res.User, nil
}

func (c *PeopleContext) Users(ctx context.Context) ([]people.User, error) {
	res, err := c.app.ListUsers.H(ctx, application.ListUsersQuery{})

	return res.Users, err //nolint:wrapcheck // use case errors are already wrapped
}

func (c *PeopleContext) UsersByRole(ctx context.Context, role people.Role) ([]people.User, error) {
	res, err := c.app.ListUsersByRole.H(ctx, application.ListUsersByRoleQuery{Role: role})
	if err != nil {
		return nil, asValidationError(err)
	}

	return res.Users, nil
}

func (c *PeopleContext) Adults(ctx context.Context) ([]people.User, error) {
	res, err := c.app.ListAdults.H(ctx, application.ListAdultsQuery{})

	return res.Users, err //nolint:wrapcheck // use case errors are already wrapped
}

func (c *PeopleContext) AverageAge(ctx context.Context) (float64, error) {
	res, err := c.app.AverageAge.H(ctx, application.AverageAgeQuery{})

	return res.Age, err //nolint:wrapcheck // use case errors are already wrapped
}

// asValidationError marks inputs rejected by the validation decorator, so callers can check for people.ErrValidation.
func asValidationError(err error) error {
	if errors.Is(err, app.ErrInvalidInput) && !errors.Is(err, user.ErrValidation) {
		return fmt.Errorf("%w: %w", user.ErrValidation, err)
	}

	return err
}

func setupApplication(di *roster.Container, logger alog.Logger, users user.Repository) application.App {
	decorators := app.Decorators{
		TraceProvider: di.TraceProvider,
		MeterProvider: di.MeterProvider,
		Logger:        logger,
		Validate:      validator.New(validator.WithRequiredStructEnabled()),
	}

	return application.App{
		CreateUser:      app.NewInstrumentedRequest(decorators, application.NewCreateUserRequestHandler(users)),
		GetUser:         app.NewInstrumentedQuery(decorators, application.NewGetUserQueryHandler(users)),
		ListUsers:       app.NewInstrumentedQuery(decorators, application.NewListUsersQueryHandler(users)),
		ListUsersByRole: app.NewInstrumentedQuery(decorators, application.NewListUsersByRoleQueryHandler(users)),
		ListAdults:      app.NewInstrumentedQuery(decorators, application.NewListAdultsQueryHandler(users)),
		AverageAge:      app.NewInstrumentedQuery(decorators, application.NewAverageAgeQueryHandler(users)),
		RemoveUser:      app.NewInstrumentedCommand(decorators, application.NewRemoveUserCommandHandler(users)),
	}
}
