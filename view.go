package tansu

// View is the single-component view: a thin, stateless window over one pool.
// Every operation reads the pool's current state, so a view created once
// stays accurate across arbitrary churn. Size is O(1) because no predicate
// beyond ownership of T applies.
//
// Iteration visits entities in reverse order of the pool's dense array. That
// convention makes removing the current entity during iteration safe: the
// swap-and-pop fills the vacated slot with an entity that was already
// visited.
type View[T any] struct {
	pool *pool[T]
}

// NewView creates a view over every entity owning a component of type T.
func NewView[T any](r *Registry) *View[T] {
	return &View[T]{pool: poolFor[T](r)}
}

// Size returns the number of entities in the view. O(1).
func (v *View[T]) Size() int {
	return v.pool.size()
}

// Empty reports whether the view has no entities.
func (v *View[T]) Empty() bool {
	return v.pool.size() == 0
}

// Contains reports whether e owns a component of type T.
func (v *View[T]) Contains(e Entity) bool {
	return v.pool.contains(e)
}

// Get returns a pointer to the component of e. Precondition: Contains(e).
func (v *View[T]) Get(e Entity) *T {
	return v.pool.get(e)
}

// Raw returns the backing component array in dense order. Mutations through
// the returned slice are visible to every other reader of the pool.
func (v *View[T]) Raw() []T {
	return v.pool.packed
}

// Data returns the backing entity array, index-aligned with Raw.
func (v *View[T]) Data() []Entity {
	return v.pool.dense
}

// At returns the entity at iteration position i, without bounds or liveness
// guarantees beyond i < Size().
func (v *View[T]) At(i int) Entity {
	return v.pool.at(i)
}

// Each invokes fn once per entity, in iteration order. Removing the current
// entity from within fn is safe; other structural changes to the pool are
// not.
func (v *View[T]) Each(fn func(Entity, *T)) {
	for i := len(v.pool.dense) - 1; i >= 0; i-- {
		fn(v.pool.dense[i], &v.pool.packed[i])
	}
}

// Iter returns a cursor positioned before the first entity.
func (v *View[T]) Iter() *Cursor[T] {
	return &Cursor[T]{pool: v.pool, idx: len(v.pool.dense)}
}

// Find returns a cursor positioned at e, or ok == false when e is not in the
// view. Advancing the cursor continues normal iteration from e's current
// position.
func (v *View[T]) Find(e Entity) (*Cursor[T], bool) {
	if !v.pool.contains(e) {
		return &Cursor[T]{pool: v.pool, idx: -1}, false
	}
	return &Cursor[T]{pool: v.pool, idx: v.pool.position(e)}, true
}

// Cursor walks a single-component view. Call Next before the first access
// unless the cursor came from Find.
type Cursor[T any] struct {
	pool *pool[T]
	idx  int
}

// Next advances to the next entity. Returns false when iteration is done.
func (c *Cursor[T]) Next() bool {
	c.idx--
	return c.idx >= 0
}

// Entity returns the current entity.
func (c *Cursor[T]) Entity() Entity {
	return c.pool.dense[c.idx]
}

// Component returns a pointer to the current entity's component.
func (c *Cursor[T]) Component() *T {
	return &c.pool.packed[c.idx]
}
