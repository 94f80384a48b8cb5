package repository_test

import (
	"context"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/go-arrower/roster/repository"
)

var ctx = context.Background()

type (
	EntityID int
	Entity   struct {
		ID   EntityID
		Name string
	}

	EntityIDString string
	EntityWithStringPK struct {
		ID   EntityIDString
		Name string
	}

	EntityIDUint8 uint8
	EntityWithUintPK struct {
		Key  EntityIDUint8
		Name string
	}
)

type EntityWithoutID struct {
	Name string
}

var _ repository.Repository[Entity, EntityID] = (*repository.MemoryRepository[Entity, EntityID])(nil)

func testEntity() Entity {
	return Entity{
		ID:   0,
		Name: gofakeit.Name(),
	}
}

func testEntities(n int) []Entity {
	entities := make([]Entity, 0, n)
	for range n {
		entities = append(entities, testEntity())
	}

	return entities
}
