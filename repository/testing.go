package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test returns a MemoryRepository tuned for unit testing.
// It exposes a lot of repository-specific assertions for the use in tests.
// The interface follows stretchr/testify as close as possible.
//
//   - Every assert func returns a bool indicating whether the assertion was successful or not,
//     this is useful for if you want to go on making further assertions under certain conditions.
func Test[E any, ID id](t *testing.T, opts ...Option) *TestRepository[E, ID] {
	if t == nil {
		panic("t is nil")
	}

	repo := NewMemoryRepository[E, ID](opts...)

	return &TestRepository[E, ID]{
		MemoryRepository: repo,
		TestAssertions:   TestAssert[E, ID](t, repo),
	}
}

// TestRepository is a special repository for unit testing.
// It exposes all methods of Repository and can be injected as a dependency.
//
// Additionally, TestRepository exposes a set of assertions on all the entities
// stored in the repository.
type TestRepository[E any, ID id] struct {
	*MemoryRepository[E, ID]
	*TestAssertions[E, ID]
}

// TestAssert returns the assertions for any existing Repository,
// e.g. one embedded into a domain specific repository.
func TestAssert[E any, ID id](t *testing.T, repo Repository[E, ID]) *TestAssertions[E, ID] {
	if t == nil {
		panic("t is nil")
	}

	return &TestAssertions[E, ID]{
		t:    t,
		repo: repo,
	}
}

// TestAssertions are assertions that work on a Repository, to make testing easier and more convenient.
type TestAssertions[E any, ID id] struct {
	t    *testing.T
	repo Repository[E, ID]
}

// Empty asserts that the repository has no entities stored.
func (a *TestAssertions[E, ID]) Empty(msgAndArgs ...any) bool {
	a.t.Helper()

	all, err := a.repo.FindAll(context.Background())
	if err != nil {
		return assert.Fail(a.t, "could not get entities from repository: "+err.Error(), msgAndArgs...)
	}

	if len(all) != 0 {
		return assert.Fail(a.t, fmt.Sprintf("repository is not empty, it has %d entities", len(all)), msgAndArgs...)
	}

	return true
}

// NotEmpty asserts that the repository has at least one entity stored.
func (a *TestAssertions[E, ID]) NotEmpty(msgAndArgs ...any) bool {
	a.t.Helper()

	all, err := a.repo.FindAll(context.Background())
	if err != nil {
		return assert.Fail(a.t, "could not get entities from repository: "+err.Error(), msgAndArgs...)
	}

	if len(all) == 0 {
		return assert.Fail(a.t, "repository is empty, should not be", msgAndArgs...)
	}

	return true
}

// Total asserts that the repository has exactly total number of entities.
func (a *TestAssertions[E, ID]) Total(total int, msgAndArgs ...any) bool {
	a.t.Helper()

	count, err := a.repo.Count(context.Background())
	if err != nil {
		return assert.Fail(a.t, "could not count entities in repository: "+err.Error(), msgAndArgs...)
	}

	if count != total {
		return assert.Fail(a.t, fmt.Sprintf("repository does not have %d entities, it has: %d", total, count), msgAndArgs...)
	}

	return true
}

// Contains asserts that an entity with the given id is stored.
func (a *TestAssertions[E, ID]) Contains(id ID, msgAndArgs ...any) bool {
	a.t.Helper()

	exists, err := a.repo.Exists(context.Background(), id)
	if err != nil {
		return assert.Fail(a.t, "could not check entity in repository: "+err.Error(), msgAndArgs...)
	}

	if !exists {
		return assert.Fail(a.t, fmt.Sprintf("repository does not contain an entity with id: %v", id), msgAndArgs...)
	}

	return true
}

// NotContains asserts that no entity with the given id is stored.
func (a *TestAssertions[E, ID]) NotContains(id ID, msgAndArgs ...any) bool {
	a.t.Helper()

	exists, err := a.repo.Exists(context.Background(), id)
	if err != nil {
		return assert.Fail(a.t, "could not check entity in repository: "+err.Error(), msgAndArgs...)
	}

	if exists {
		return assert.Fail(a.t, fmt.Sprintf("repository contains an entity with id: %v", id), msgAndArgs...)
	}

	return true
}
