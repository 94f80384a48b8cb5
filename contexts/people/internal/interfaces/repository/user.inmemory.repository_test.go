package repository_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/roster/contexts/people/internal/domain/user"
	"github.com/go-arrower/roster/contexts/people/internal/interfaces/repository"
	repo "github.com/go-arrower/roster/repository"
)

func TestUserMemoryRepository(t *testing.T) {
	t.Parallel()

	t.Run("add, find and remove users", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()

		u28, u17, u45 := newUser(t, 28), newUser(t, 17), newUser(t, 45)

		for i, u := range []user.User{u28, u17, u45} {
			id, err := users.Add(ctx, u)
			assert.NoError(t, err)
			assert.Equal(t, user.ID(i+1), id)
		}

		adults, err := users.FilterAdults(ctx)
		assert.NoError(t, err)
		require.Len(t, adults, 2)
		assert.Equal(t, u28.Name, adults[0].Name)
		assert.Equal(t, u45.Name, adults[1].Name)

		avg, err := users.AverageAge(ctx)
		assert.NoError(t, err)
		assert.InDelta(t, 30.0, avg, 0.0001)

		found, err := users.FindByID(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, 17, found.Age)
		assert.Equal(t, u17.Name, found.Name)

		assert.True(t, users.Remove(ctx, 2))
		assert.False(t, users.Remove(ctx, 2))

		all, err := users.FindAll(ctx)
		assert.NoError(t, err)
		assert.Len(t, all, 2)

		_, err = users.FindByID(ctx, 2)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})

	t.Run("round trip keeps all fields except the id", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()
		usr := newUser(t, 33, user.WithRole(user.RoleGuest))

		id, err := users.Add(ctx, usr)
		require.NoError(t, err)

		found, err := users.FindByID(ctx, id)
		assert.NoError(t, err)

		usr.ID = id
		assert.Equal(t, usr, found)
	})

	t.Run("default capacity", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()

		for range repository.DefaultCapacity {
			_, err := users.Add(ctx, newUser(t, 20))
			require.NoError(t, err)
		}

		_, err := users.Add(ctx, newUser(t, 20))
		assert.ErrorIs(t, err, user.ErrCapacity)

		count, _ := users.Count(ctx)
		assert.Equal(t, repository.DefaultCapacity, count)
	})

	t.Run("configured capacity", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository(repo.WithCapacity(1))

		id, err := users.Add(ctx, newUser(t, 20))
		assert.NoError(t, err)

		_, err = users.Add(ctx, newUser(t, 20))
		assert.ErrorIs(t, err, user.ErrCapacity)

		users.Remove(ctx, id)

		id, err = users.Add(ctx, newUser(t, 20))
		assert.NoError(t, err)
		assert.Equal(t, user.ID(2), id, "failed add does not consume an id")
	})

	t.Run("unbounded", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository(repo.WithCapacity(0))

		for range repository.DefaultCapacity + 1 {
			_, err := users.Add(ctx, newUser(t, 20))
			require.NoError(t, err)
		}
	})
}

func TestUserMemoryRepository_AverageAge(t *testing.T) {
	t.Parallel()

	t.Run("empty repository", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()

		avg, err := users.AverageAge(ctx)
		assert.NoError(t, err)
		assert.Zero(t, avg)
	})

	t.Run("fractional average", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()
		_, _ = users.Add(ctx, newUser(t, 20))
		_, _ = users.Add(ctx, newUser(t, 21))

		avg, err := users.AverageAge(ctx)
		assert.NoError(t, err)
		assert.InDelta(t, 20.5, avg, 0.0001)
	})
}

func TestUserMemoryRepository_FilterAdults(t *testing.T) {
	t.Parallel()

	users := repository.NewUserMemoryRepository()

	adults, err := users.FilterAdults(ctx)
	assert.NoError(t, err)
	assert.Empty(t, adults)

	_, _ = users.Add(ctx, newUser(t, 17))
	_, _ = users.Add(ctx, newUser(t, 18))

	adults, err = users.FilterAdults(ctx)
	assert.NoError(t, err)
	require.Len(t, adults, 1)
	assert.Equal(t, 18, adults[0].Age)
}

func TestUserMemoryRepository_FindByRole(t *testing.T) {
	t.Parallel()

	users := repository.NewUserMemoryRepository()
	_, _ = users.Add(ctx, newUser(t, 30, user.WithRole(user.RoleAdmin)))
	_, _ = users.Add(ctx, newUser(t, 31))
	_, _ = users.Add(ctx, newUser(t, 32, user.WithRole(user.RoleAdmin)))

	admins, err := users.FindByRole(ctx, user.RoleAdmin)
	assert.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, user.ID(1), admins[0].ID)
	assert.Equal(t, user.ID(3), admins[1].ID)

	guests, err := users.FindByRole(ctx, user.RoleGuest)
	assert.NoError(t, err)
	assert.Empty(t, guests)
}

func TestUserMemoryRepository_Update(t *testing.T) {
	t.Parallel()

	t.Run("update user", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()
		id, _ := users.Add(ctx, newUser(t, 30))

		usr, _ := users.FindByID(ctx, id)
		createdAt := usr.CreatedAt

		usr.Age = 31
		usr.CreatedAt = createdAt.AddDate(1, 0, 0)

		err := users.Update(ctx, usr)
		assert.NoError(t, err)

		found, _ := users.FindByID(ctx, id)
		assert.Equal(t, 31, found.Age)
		assert.Equal(t, createdAt, found.CreatedAt, "creation time is immutable")
	})

	t.Run("changes are not visible before update", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()
		id, _ := users.Add(ctx, newUser(t, 30))

		usr, _ := users.FindByID(ctx, id)
		usr.Age = 99

		found, _ := users.FindByID(ctx, id)
		assert.Equal(t, 30, found.Age)
	})

	t.Run("invalid user", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()
		id, _ := users.Add(ctx, newUser(t, 30))

		usr, _ := users.FindByID(ctx, id)
		usr.Age = -5

		err := users.Update(ctx, usr)
		assert.ErrorIs(t, err, user.ErrValidation)

		found, _ := users.FindByID(ctx, id)
		assert.Equal(t, 30, found.Age)
	})

	t.Run("concurrent with remove", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()
		id, _ := users.Add(ctx, newUser(t, 30))
		usr, _ := users.FindByID(ctx, id)

		var wg sync.WaitGroup

		wg.Add(2)

		go func() {
			defer wg.Done()

			for age := range 50 {
				usr.Age = age

				err := users.Update(ctx, usr)
				if err != nil {
					assert.ErrorIs(t, err, user.ErrNotFound)
				}
			}
		}()

		go func() {
			defer wg.Done()

			users.Remove(ctx, id)
		}()

		wg.Wait()

		_, err := users.FindByID(ctx, id)
		assert.ErrorIs(t, err, user.ErrNotFound, "an update never brings a removed user back")
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()

		users := repository.NewUserMemoryRepository()
		usr := newUser(t, 30)
		usr.ID = 42

		err := users.Update(ctx, usr)
		assert.ErrorIs(t, err, user.ErrNotFound)
	})
}

func TestUserMemoryRepository_Clear(t *testing.T) {
	t.Parallel()

	users := repository.NewUserMemoryRepository()
	_, _ = users.Add(ctx, newUser(t, 30))
	_, _ = users.Add(ctx, newUser(t, 31))

	err := users.Clear(ctx)
	assert.NoError(t, err)

	all, _ := users.FindAll(ctx)
	assert.Empty(t, all)

	id, _ := users.Add(ctx, newUser(t, 32))
	assert.Equal(t, user.ID(3), id, "ids are not reused after clear")
}
