package repository

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"iter"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// NewMemoryRepository returns an implementation of Repository for the given entity E.
// It is expected that E has a field called `ID`, that is used as the primary key and can
// be overwritten by WithIDField.
// If your repository needs additional methods, you can embed this repo into our own implementation to extend
// your own repository easily to your use case. See the examples in the test files.
//
// The repository owns every entity it admitted. It hands out copies only,
// so changes to a returned entity are not visible until they are passed to Update.
func NewMemoryRepository[E any, ID id](opts ...Option) *MemoryRepository[E, ID] {
	repo := &MemoryRepository[E, ID]{
		mu:           sync.Mutex{},
		data:         make(map[ID]E),
		order:        []ID{},
		currentIntID: *new(ID),
		entropy:      nil,
		repoConfig: repoConfig{
			idFieldName: "ID",
			capacity:    0,
			useULID:     false,
		},
	}

	for _, opt := range opts {
		opt(&repo.repoConfig)
	}

	if repo.useULID {
		repo.entropy = ulid.Monotonic(rand.Reader, 0)
	}

	return repo
}

// MemoryRepository implements Repository in a generic way.
// Every method holds the same lock for its whole duration,
// so a repository can be shared, but there is no finer grained concurrency.
// Two calls are not atomic together, e.g. FindByID followed by Update. Use UpdateFunc to change a stored entity in one step.
type MemoryRepository[E any, ID id] struct {
	mu sync.Mutex

	data map[ID]E
	// order keeps the IDs in the order the entities got admitted.
	order []ID

	// currentIntID is the last integer ID issued. It only ever grows.
	currentIntID ID
	entropy      io.Reader

	repoConfig
}

const panicIDNotSupported = "type of ID is not supported: "

// idField returns the settable ID field of the entity behind ptr.
func (repo *MemoryRepository[E, ID]) idField(ptr *E) reflect.Value {
	val := reflect.Indirect(reflect.ValueOf(ptr).Elem())
	if val.Kind() != reflect.Struct {
		panic("entity is not a struct: " + val.Kind().String())
	}

	field := val.FieldByName(repo.idFieldName)
	if !field.IsValid() {
		panic("entity does not have the field with name: " + repo.idFieldName)
	}

	return field
}

func (repo *MemoryRepository[E, ID]) getID(entity E) ID { //nolint:ireturn // valid use of generics
	field := repo.idField(&entity)

	var id ID

	switch field.Kind() {
	case reflect.String:
		reflect.ValueOf(&id).Elem().SetString(field.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		reflect.ValueOf(&id).Elem().SetInt(field.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		reflect.ValueOf(&id).Elem().SetUint(field.Uint())
	default:
		panic(panicIDNotSupported + field.Kind().String())
	}

	return id
}

func setID[ID id](field reflect.Value, id ID) {
	val := reflect.ValueOf(id)

	switch field.Kind() {
	case reflect.String:
		field.SetString(val.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.SetInt(val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		field.SetUint(val.Uint())
	default:
		panic(panicIDNotSupported + field.Kind().String())
	}
}

// NextID returns a new ID. It can be of the underlying type of string or integer.
// Integer IDs start at 1 and are strictly increasing, an ID is never issued twice,
// even if the entity got removed.
func (repo *MemoryRepository[E, ID]) NextID(_ context.Context) (ID, error) { //nolint:ireturn // valid use of generics
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return repo.nextID()
}

func (repo *MemoryRepository[E, ID]) nextID() (ID, error) { //nolint:ireturn // valid use of generics
	var id ID

	idVal := reflect.ValueOf(&id).Elem()
	current := reflect.ValueOf(&repo.currentIntID).Elem()

	switch idVal.Kind() {
	case reflect.String:
		if repo.useULID {
			newID, err := ulid.New(ulid.Timestamp(time.Now()), repo.entropy)
			if err != nil {
				return id, fmt.Errorf("%w: %v", errIDGenerationFailed, err)
			}

			idVal.SetString(newID.String())

			return id, nil
		}

		idVal.SetString(uuid.New().String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// the generic does not know which type ID is, so reflection is used to increment it.
		newID := current.Int() + 1
		if current.OverflowInt(newID) {
			return id, fmt.Errorf("%w: id space of %T exhausted", errIDGenerationFailed, id)
		}

		current.SetInt(newID)
		idVal.SetInt(newID)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		newID := current.Uint() + 1
		if newID == 0 || current.OverflowUint(newID) {
			return id, fmt.Errorf("%w: id space of %T exhausted", errIDGenerationFailed, id)
		}

		current.SetUint(newID)
		idVal.SetUint(newID)
	default:
		panic(panicIDNotSupported + idVal.Kind().String())
	}

	return id, nil
}

// Add admits the entity into the repository.
// Any ID the entity carries is overwritten with the next ID, which is returned.
// If the repository is at capacity, ErrCapacity is returned and nothing changes.
func (repo *MemoryRepository[E, ID]) Add(_ context.Context, entity E) (ID, error) { //nolint:ireturn // valid use of generics
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if repo.capacity > 0 && len(repo.data) >= repo.capacity {
		return *new(ID), fmt.Errorf("%w: %w: limit of %d reached", errAddFailed, ErrCapacity, repo.capacity)
	}

	field := repo.idField(&entity)

	id, err := repo.nextID()
	if err != nil {
		return *new(ID), fmt.Errorf("%w: %w", errAddFailed, err)
	}

	setID(field, id)

	repo.data[id] = entity
	repo.order = append(repo.order, id)

	return id, nil
}

// Update replaces an already admitted entity, it keeps its position in the order.
func (repo *MemoryRepository[E, ID]) Update(_ context.Context, entity E) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	id := repo.getID(entity)

	if _, found := repo.data[id]; !found {
		return fmt.Errorf("%w: %w: %v", errUpdateFailed, ErrNotFound, id)
	}

	repo.data[id] = entity

	return nil
}

// UpdateFunc replaces the entity with the given id by what update returns for the stored one.
// Reading and writing happen under the same lock, so no other call can change or remove the entity in between.
// update must not call the repository. The id of the returned entity is kept as id.
func (repo *MemoryRepository[E, ID]) UpdateFunc(_ context.Context, id ID, update func(stored E) (E, error)) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, found := repo.data[id]
	if !found {
		return fmt.Errorf("%w: %w: %v", errUpdateFailed, ErrNotFound, id)
	}

	updated, err := update(stored)
	if err != nil {
		return fmt.Errorf("%w: %w", errUpdateFailed, err)
	}

	setID(repo.idField(&updated), id)
	repo.data[id] = updated

	return nil
}

// Remove deletes the entity with the given id.
// It reports if an entity was removed, a missing id is not an error.
func (repo *MemoryRepository[E, ID]) Remove(_ context.Context, id ID) bool {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, found := repo.data[id]; !found {
		return false
	}

	delete(repo.data, id)

	if i := slices.Index(repo.order, id); i >= 0 {
		repo.order = slices.Delete(repo.order, i, i+1)
	}

	return true
}

func (repo *MemoryRepository[E, ID]) FindByID(_ context.Context, id ID) (E, error) { //nolint:ireturn // valid use of generics
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if e, ok := repo.data[id]; ok {
		return e, nil
	}

	return *new(E), ErrNotFound
}

// FindAll returns a snapshot of all entities in the order they got added.
func (repo *MemoryRepository[E, ID]) FindAll(ctx context.Context) ([]E, error) {
	return repo.FindBy(ctx, func(E) bool { return true })
}

// FindBy returns all entities that match, in the order they got added.
func (repo *MemoryRepository[E, ID]) FindBy(_ context.Context, match func(E) bool) ([]E, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	result := make([]E, 0, len(repo.order))

	for _, id := range repo.order {
		if e := repo.data[id]; match(e) {
			result = append(result, e)
		}
	}

	return result, nil
}

func (repo *MemoryRepository[E, ID]) Exists(_ context.Context, id ID) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	_, ok := repo.data[id]

	return ok, nil
}

func (repo *MemoryRepository[E, ID]) Count(_ context.Context) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	return len(repo.data), nil
}

// Clear drops all entities. The ID counter is not reset, so IDs stay unique.
func (repo *MemoryRepository[E, ID]) Clear(_ context.Context) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	clear(repo.data)
	repo.order = []ID{}

	return nil
}

func (repo *MemoryRepository[E, ID]) AllIter(ctx context.Context) Iterator[E] { //nolint:ireturn // valid use of generics
	return MemoryIterator[E, ID]{ctx: ctx, repo: repo}
}

// MemoryIterator iterates over a snapshot taken when ranging starts.
// The repository is not locked while the caller's loop body runs.
type MemoryIterator[E any, ID id] struct {
	ctx  context.Context //nolint:containedctx // the iterator is short-lived
	repo *MemoryRepository[E, ID]
}

func (i MemoryIterator[E, ID]) Next() iter.Seq2[E, error] {
	return func(yield func(e E, err error) bool) {
		all, err := i.repo.FindAll(i.ctx)
		if err != nil {
			yield(*new(E), err)
			return
		}

		for _, e := range all {
			if !yield(e, nil) {
				return
			}
		}
	}
}
