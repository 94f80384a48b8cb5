package repository

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

var (
	ErrStorage  = errors.New("storage error")
	ErrNotFound = errors.New("not found")
	ErrCapacity = errors.New("capacity exhausted")
)

// Option takes in a repository configuration to set different optional properties.
type Option func(config *repoConfig)

// WithIDField set's the name of the field that is used as an id or primary key.
// If not set, it is assumed that the entity struct has a field with the name "ID".
func WithIDField(idFieldName string) Option {
	return func(config *repoConfig) {
		config.idFieldName = idFieldName
	}
}

// WithCapacity bounds the number of entities a repository holds at the same time.
// Zero or a negative value means unbounded, which is the default.
func WithCapacity(capacity int) Option {
	return func(config *repoConfig) {
		if capacity < 0 {
			capacity = 0
		}

		config.capacity = capacity
	}
}

// WithULID makes NextID generate monotonic ULIDs for string IDs instead of UUIDs.
// ULIDs sort lexicographically in the order they are issued.
// It has no effect on integer IDs, they are always monotonic.
func WithULID() Option {
	return func(config *repoConfig) {
		config.useULID = true
	}
}

type repoConfig struct {
	idFieldName string
	capacity    int
	useULID     bool
}

// Repository is a general purpose interface documenting which methods are available by the generic MemoryRepository.
// ID is the primary key and needs to be of one of the underlying types.
// If your repository needs additional methods, you can extend your own repository easily to tune it to your use case.
// See the examples in the test files.
type Repository[E any, ID id] interface {
	NextID(ctx context.Context) (ID, error)

	Add(ctx context.Context, entity E) (ID, error)
	Update(ctx context.Context, entity E) error
	Remove(ctx context.Context, id ID) bool

	FindByID(ctx context.Context, id ID) (E, error)
	FindAll(ctx context.Context) ([]E, error)
	FindBy(ctx context.Context, match func(E) bool) ([]E, error)
	Exists(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int, error)

	Clear(ctx context.Context) error

	AllIter(ctx context.Context) Iterator[E]
}

type Iterator[E any] interface {
	Next() iter.Seq2[E, error]
}

// id are the types allowed as a primary key used in the generic Repository.
type id interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var (
	errIDGenerationFailed = fmt.Errorf("%w: id generation failed", ErrStorage)
	errAddFailed          = fmt.Errorf("%w: add failed", ErrStorage)
	errUpdateFailed       = fmt.Errorf("%w: update failed", ErrStorage)
)
