package repository_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
)

var ctx = context.Background()

func newUser(t *testing.T, age int, opts ...user.Option) user.User {
	t.Helper()

	usr, err := user.New(gofakeit.Name(), gofakeit.Email(), age, opts...)
	require.NoError(t, err)

	return usr
}
