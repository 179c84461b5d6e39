// package repositories provides the in-memory storage layer for all entity types.
//
// A single generic [Repository] handles id assignment and CRUD for every
// entity kind; the search key extractor injected at construction time decides
// which text field substring search runs against.
package repositories

import (
	"strings"

	"github.com/desertthunder/taskdeck/internal/models"
)

// Repository is an id-keyed in-memory store with autoincrement ids.
//
// Ids start at 1, increase by one per Create and are never reused for the
// lifetime of the instance; only [Repository.Clear] resets the counter. The
// repository knows nothing about business rules: it stores, finds and
// deletes, and existence is the only condition it ever reports.
type Repository[T any] struct {
	items     map[int]T
	nextID    int
	searchKey func(T) string
}

// New creates an empty repository. searchKey extracts the text field that
// [Repository.Search] matches against.
func New[T any](searchKey func(T) string) *Repository[T] {
	return &Repository[T]{
		items:     make(map[int]T),
		nextID:    1,
		searchKey: searchKey,
	}
}

// NewCategories creates the category store, searchable by name.
func NewCategories() *Repository[*models.Category] {
	return New(func(c *models.Category) string { return c.Name })
}

// NewTasks creates the task store, searchable by title.
func NewTasks() *Repository[*models.Task] {
	return New(func(t *models.Task) string { return t.Title })
}

// Create allocates the next id, stores the entity returned by build and hands
// it back. It never fails.
func (r *Repository[T]) Create(build func(id int) T) T {
	item := build(r.nextID)
	r.items[r.nextID] = item
	r.nextID++
	return item
}

// All returns a snapshot slice of every stored entity. Mutating the returned
// slice does not affect the repository. Iteration order is map order; callers
// must not rely on it.
func (r *Repository[T]) All() []T {
	all := make([]T, 0, len(r.items))
	for _, item := range r.items {
		all = append(all, item)
	}
	return all
}

// Get finds an entity by exact id.
func (r *Repository[T]) Get(id int) (T, bool) {
	item, ok := r.items[id]
	return item, ok
}

// Search returns every entity whose search key contains text, ignoring case.
// An empty query matches nothing rather than everything.
func (r *Repository[T]) Search(text string) []T {
	matches := []T{}
	if text == "" {
		return matches
	}

	needle := strings.ToLower(text)
	for _, item := range r.items {
		if strings.Contains(strings.ToLower(r.searchKey(item)), needle) {
			matches = append(matches, item)
		}
	}
	return matches
}

// Delete removes the entity with the given id and reports whether anything
// was removed.
func (r *Repository[T]) Delete(id int) bool {
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	return true
}

// Clear empties the store and resets the id counter, so the next Create
// assigns id 1 again.
func (r *Repository[T]) Clear() {
	r.items = make(map[int]T)
	r.nextID = 1
}

// Len returns the number of stored entities.
func (r *Repository[T]) Len() int {
	return len(r.items)
}
