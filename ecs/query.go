package ecs

import "iter"

// Query is a View whose matches are gathered once per frame. The Scheduler
// calls Execute before the owning system runs; Iter then walks the snapshot.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	archetypes     []*Archetype
	archetypeCount int

	items []T
	ready bool
}

// NewQuery returns a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops any cached state.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypeCount = -1
	q.items = q.items[:0]
	q.ready = false
}

// Execute rebuilds the snapshot. The archetype match list is only recomputed
// when the storage has gained archetypes since the last call.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.archetypeCount {
		q.archetypes = q.archetypes[:0]
		for _, a := range q.storage.archetypes {
			if q.view.matches(a) {
				q.archetypes = append(q.archetypes, a)
			}
		}
		q.archetypeCount = n
	}

	clear(q.items)
	q.items = q.items[:0]
	for _, a := range q.archetypes {
		q.view.iterArchetype(a, func(item T) bool {
			q.items = append(q.items, item)
			return true
		})
	}
	q.ready = true
}

// Iter walks the snapshot taken by the last Execute.
func (q *Query[T]) Iter() iter.Seq[T] {
	if !q.ready {
		panic("ecs: Query.Iter called before Query.Execute")
	}
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}

// First returns the first match of the snapshot, if any.
func (q *Query[T]) First() (T, bool) {
	if !q.ready {
		panic("ecs: Query.First called before Query.Execute")
	}
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Len is the number of matches in the snapshot.
func (q *Query[T]) Len() int {
	return len(q.items)
}
