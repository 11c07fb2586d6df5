package tansu

// RawView exposes only the dense component array of one pool, for unindexed
// bulk iteration: no entity identities, no predicate, just the flat storage.
// Data exposes the parallel entity array for correlating positions back to
// entities when needed.
//
// Mutations through Raw, At or Each are writes into the pool's backing
// storage and are observable through every other view of the same pool.
type RawView[T any] struct {
	pool *pool[T]
}

// NewRawView creates a raw view over the pool of T.
func NewRawView[T any](r *Registry) *RawView[T] {
	return &RawView[T]{pool: poolFor[T](r)}
}

// Size returns the number of components in the pool. O(1).
func (v *RawView[T]) Size() int {
	return len(v.pool.packed)
}

// Empty reports whether the pool stores no components.
func (v *RawView[T]) Empty() bool {
	return len(v.pool.packed) == 0
}

// Raw returns the backing component storage in dense order, suitable for
// bulk access.
func (v *RawView[T]) Raw() []T {
	return v.pool.packed
}

// Data returns the backing entity array, index-aligned with Raw.
func (v *RawView[T]) Data() []Entity {
	return v.pool.dense
}

// At returns a pointer to the component at iteration position i.
func (v *RawView[T]) At(i int) *T {
	return &v.pool.packed[len(v.pool.packed)-1-i]
}

// Each invokes fn once per component, in iteration order.
func (v *RawView[T]) Each(fn func(*T)) {
	for i := len(v.pool.packed) - 1; i >= 0; i-- {
		fn(&v.pool.packed[i])
	}
}

// Iter returns a cursor positioned before the first component.
func (v *RawView[T]) Iter() *RawCursor[T] {
	return &RawCursor[T]{pool: v.pool, idx: len(v.pool.packed)}
}

// RawCursor walks a raw view's component array.
type RawCursor[T any] struct {
	pool *pool[T]
	idx  int
}

// Next advances to the next component. Returns false when iteration is done.
func (c *RawCursor[T]) Next() bool {
	c.idx--
	return c.idx >= 0
}

// Component returns a pointer to the current component.
func (c *RawCursor[T]) Component() *T {
	return &c.pool.packed[c.idx]
}
