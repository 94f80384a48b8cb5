package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/roster/repository"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepository[Entity, EntityID](repository.WithCapacity(1))

	_, err := repo.Add(ctx, testEntity())
	assert.NoError(t, err)

	_, err = repo.Add(ctx, testEntity())
	assert.ErrorIs(t, err, repository.ErrCapacity)
	assert.ErrorIs(t, err, repository.ErrStorage)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	err = repo.Update(ctx, Entity{ID: 2})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NotErrorIs(t, err, repository.ErrCapacity)
}
