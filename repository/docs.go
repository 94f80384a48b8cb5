// Package repository offers a generic in-memory repository for entities with an ID field.
//
// A MemoryRepository assigns the IDs itself: integer IDs are issued from a counter local to
// the repository instance, starting at 1 and never reused, not even after a removal.
// Entities are kept in the order they were added, which is the order FindAll and AllIter return them in.
//
// A Repository offers a whole set of methods already out of the box. That might not be enough, though.
// It is possible to overwrite an existing method to change the behaviour as well as extend the Repository
// with new methods. There are examples for both.
//
// Everything lives in memory only and is gone with the process.
package repository
