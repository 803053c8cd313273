package ecs

import (
	"iter"
)

// Query is a View whose matching archetypes and rows are cached. Execute
// rebuilds the rows; the Scheduler calls it right before each system runs,
// so Iter sees structural changes flushed by earlier passes.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a Query outside a Scheduler.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage. The Scheduler calls it on registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute rebuilds the row cache.
func (q *Query[T]) Execute() {
	q.refreshArchetypes()

	q.cachedEntities = q.cachedEntities[:0]
	clear(q.cachedComponents)
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) refreshArchetypes() {
	if len(q.storage.archetypes) == q.lastArchetypeCount && q.cachedArchetypes != nil {
		return
	}
	q.lastArchetypeCount = len(q.storage.archetypes)

	q.cachedArchetypes = q.cachedArchetypes[:0]
	for _, archetype := range q.storage.GetArchetypes() {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

// Iter yields the cached rows. It panics if Execute has never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.cacheValid {
		panic("Query.Iter() called before Query.Execute()")
	}

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values yields the cached rows without ids.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("Query.Values() called before Query.Execute()")
	}

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of cached rows.
func (q *Query[T]) Len() int {
	return len(q.cachedEntities)
}

// First returns the first cached row, for queries expected to match a single
// entity such as the player ship.
func (q *Query[T]) First() (EntityId, T, bool) {
	var zero T
	if !q.cacheValid || len(q.cachedEntities) == 0 {
		return 0, zero, false
	}
	return q.cachedEntities[0], q.cachedComponents[0], true
}
