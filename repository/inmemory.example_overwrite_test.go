//nolint:govet // allow shadow declaration of ctx (from the testdata) as this file is to showcase and should be clean.
package repository_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/roster/repository"
)

func Example_overwriteRepositoryMethodWithOwnBehaviour() {
	ctx := context.Background()

	repo := NewCounterMemoryRepository()
	_, _ = repo.Add(ctx, Counter{Hits: 3})

	// the overwritten Add refuses empty counters
	_, err := repo.Add(ctx, Counter{Hits: 0})
	fmt.Println(err)

	c, _ := repo.Count(ctx)
	fmt.Println(c)

	// Output:
	// counter without hits
	// 1
}

type Counter struct {
	ID   uint
	Hits int
}

func NewCounterMemoryRepository() *CounterMemoryRepository {
	return &CounterMemoryRepository{
		MemoryRepository: repository.NewMemoryRepository[Counter, uint](),
	}
}

type CounterMemoryRepository struct {
	*repository.MemoryRepository[Counter, uint]
}

var errNoHits = errors.New("counter without hits")

// Add overwrites the existing Add method to check the entity before admitting it.
func (repo *CounterMemoryRepository) Add(ctx context.Context, c Counter) (uint, error) {
	if c.Hits == 0 {
		return 0, errNoHits
	}

	return repo.MemoryRepository.Add(ctx, c) //nolint:wrapcheck // decorate but not change anything
}
