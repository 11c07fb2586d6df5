package tansu

// Multi-component views recompute their membership on every access: they own
// no storage, only references to the pools involved. Iteration drives the
// smallest required pool (the pivot, chosen when a cursor is created) and
// skips entities that fail the full predicate: present in every required
// pool, absent from every excluded pool.
//
// As with single-component views, iteration runs in reverse dense order of
// the pivot, so removing the current entity during iteration is safe.

// exclusionList resolves excluded component IDs against the registry at test
// time, so a pool materialized after view construction still excludes.
type exclusionList struct {
	reg *Registry
	ids []ComponentID
}

// contains reports whether e owns any of the excluded components.
func (x exclusionList) contains(e Entity) bool {
	for _, id := range x.ids {
		if p := x.reg.pools[id]; p != nil && p.container().contains(e) {
			return true
		}
	}
	return false
}

// pivotOf picks the smallest of the given stores; ties go to the earliest.
func pivotOf(stores ...*entityStore) *entityStore {
	pivot := stores[0]
	for _, s := range stores[1:] {
		if s.size() < pivot.size() {
			pivot = s
		}
	}
	return pivot
}

// View2 iterates all entities that own the 2 components T1, T2 and none of
// the excluded components.
type View2[T1 any, T2 any] struct {
	p1   *pool[T1]
	p2   *pool[T2]
	excl exclusionList
}

// NewView2 creates a view over entities owning the 2 components T1, T2,
// minus entities owning any component in excludes.
func NewView2[T1 any, T2 any](r *Registry, excludes ...ComponentID) *View2[T1, T2] {
	return &View2[T1, T2]{
		p1:   poolFor[T1](r),
		p2:   poolFor[T2](r),
		excl: exclusionList{reg: r, ids: excludes},
	}
}

func (v *View2[T1, T2]) pivot() *entityStore {
	return pivotOf(&v.p1.entityStore, &v.p2.entityStore)
}

// test applies the full predicate to e, independent of iteration state.
func (v *View2[T1, T2]) test(e Entity) bool {
	return v.p1.contains(e) && v.p2.contains(e) && !v.excl.contains(e)
}

// Contains reports whether e satisfies the view's predicate.
func (v *View2[T1, T2]) Contains(e Entity) bool {
	return v.test(e)
}

// Size returns the number of entities satisfying the predicate. Requires a
// full scan of the pivot pool; not O(1).
func (v *View2[T1, T2]) Size() int {
	n := 0
	for _, e := range v.pivot().dense {
		if v.test(e) {
			n++
		}
	}
	return n
}

// Empty reports whether no entity satisfies the predicate. Short-circuits on
// the first match.
func (v *View2[T1, T2]) Empty() bool {
	for _, e := range v.pivot().dense {
		if v.test(e) {
			return false
		}
	}
	return true
}

// Get returns pointers to the components of e. Precondition: Contains(e).
func (v *View2[T1, T2]) Get(e Entity) (*T1, *T2) {
	return v.p1.get(e), v.p2.get(e)
}

// At returns the entity at pivot iteration position i without applying the
// predicate. Positional, not filtered: valid only when the caller knows
// position i satisfies the predicate.
func (v *View2[T1, T2]) At(i int) Entity {
	return v.pivot().at(i)
}

// Each invokes fn once per entity satisfying the predicate, in pivot
// iteration order. Removing the current entity from within fn is safe.
func (v *View2[T1, T2]) Each(fn func(Entity, *T1, *T2)) {
	pivot := v.pivot()
	for i := len(pivot.dense) - 1; i >= 0; i-- {
		if e := pivot.dense[i]; v.test(e) {
			fn(e, v.p1.get(e), v.p2.get(e))
		}
	}
}

// Iter returns a cursor positioned before the first entity. The pivot is
// fixed when the cursor is created, not re-evaluated mid-iteration.
func (v *View2[T1, T2]) Iter() *Cursor2[T1, T2] {
	pivot := v.pivot()
	return &Cursor2[T1, T2]{view: v, store: pivot, idx: len(pivot.dense)}
}

// Find returns a cursor positioned at e, or ok == false when e does not
// satisfy the predicate. Advancing the cursor continues normal iteration
// over the pivot's current dense order.
func (v *View2[T1, T2]) Find(e Entity) (*Cursor2[T1, T2], bool) {
	pivot := v.pivot()
	if !v.test(e) {
		return &Cursor2[T1, T2]{view: v, store: pivot, idx: -1}, false
	}
	return &Cursor2[T1, T2]{view: v, store: pivot, idx: pivot.position(e)}, true
}

// Cursor2 walks a View2. Call Next before the first access unless the cursor
// came from Find.
type Cursor2[T1 any, T2 any] struct {
	view  *View2[T1, T2]
	store *entityStore
	idx   int
}

// Next advances past entities failing the predicate to the next match.
// Returns false when iteration is done.
func (c *Cursor2[T1, T2]) Next() bool {
	for c.idx--; c.idx >= 0; c.idx-- {
		if c.view.test(c.store.dense[c.idx]) {
			return true
		}
	}
	return false
}

// Entity returns the current entity.
func (c *Cursor2[T1, T2]) Entity() Entity {
	return c.store.dense[c.idx]
}

// Get returns pointers to the current entity's components.
func (c *Cursor2[T1, T2]) Get() (*T1, *T2) {
	e := c.store.dense[c.idx]
	return c.view.p1.get(e), c.view.p2.get(e)
}

// View3 iterates all entities that own the 3 components T1, T2, T3 and none
// of the excluded components.
type View3[T1 any, T2 any, T3 any] struct {
	p1   *pool[T1]
	p2   *pool[T2]
	p3   *pool[T3]
	excl exclusionList
}

// NewView3 creates a view over entities owning the 3 components T1, T2, T3,
// minus entities owning any component in excludes.
func NewView3[T1 any, T2 any, T3 any](r *Registry, excludes ...ComponentID) *View3[T1, T2, T3] {
	return &View3[T1, T2, T3]{
		p1:   poolFor[T1](r),
		p2:   poolFor[T2](r),
		p3:   poolFor[T3](r),
		excl: exclusionList{reg: r, ids: excludes},
	}
}

func (v *View3[T1, T2, T3]) pivot() *entityStore {
	return pivotOf(&v.p1.entityStore, &v.p2.entityStore, &v.p3.entityStore)
}

func (v *View3[T1, T2, T3]) test(e Entity) bool {
	return v.p1.contains(e) && v.p2.contains(e) && v.p3.contains(e) && !v.excl.contains(e)
}

// Contains reports whether e satisfies the view's predicate.
func (v *View3[T1, T2, T3]) Contains(e Entity) bool {
	return v.test(e)
}

// Size returns the number of entities satisfying the predicate; full scan of
// the pivot pool.
func (v *View3[T1, T2, T3]) Size() int {
	n := 0
	for _, e := range v.pivot().dense {
		if v.test(e) {
			n++
		}
	}
	return n
}

// Empty reports whether no entity satisfies the predicate.
func (v *View3[T1, T2, T3]) Empty() bool {
	for _, e := range v.pivot().dense {
		if v.test(e) {
			return false
		}
	}
	return true
}

// Get returns pointers to the components of e. Precondition: Contains(e).
func (v *View3[T1, T2, T3]) Get(e Entity) (*T1, *T2, *T3) {
	return v.p1.get(e), v.p2.get(e), v.p3.get(e)
}

// At returns the entity at pivot iteration position i without applying the
// predicate. Positional, not filtered.
func (v *View3[T1, T2, T3]) At(i int) Entity {
	return v.pivot().at(i)
}

// Each invokes fn once per entity satisfying the predicate, in pivot
// iteration order.
func (v *View3[T1, T2, T3]) Each(fn func(Entity, *T1, *T2, *T3)) {
	pivot := v.pivot()
	for i := len(pivot.dense) - 1; i >= 0; i-- {
		if e := pivot.dense[i]; v.test(e) {
			fn(e, v.p1.get(e), v.p2.get(e), v.p3.get(e))
		}
	}
}

// Iter returns a cursor positioned before the first entity.
func (v *View3[T1, T2, T3]) Iter() *Cursor3[T1, T2, T3] {
	pivot := v.pivot()
	return &Cursor3[T1, T2, T3]{view: v, store: pivot, idx: len(pivot.dense)}
}

// Find returns a cursor positioned at e, or ok == false when e does not
// satisfy the predicate.
func (v *View3[T1, T2, T3]) Find(e Entity) (*Cursor3[T1, T2, T3], bool) {
	pivot := v.pivot()
	if !v.test(e) {
		return &Cursor3[T1, T2, T3]{view: v, store: pivot, idx: -1}, false
	}
	return &Cursor3[T1, T2, T3]{view: v, store: pivot, idx: pivot.position(e)}, true
}

// Cursor3 walks a View3.
type Cursor3[T1 any, T2 any, T3 any] struct {
	view  *View3[T1, T2, T3]
	store *entityStore
	idx   int
}

// Next advances past entities failing the predicate to the next match.
func (c *Cursor3[T1, T2, T3]) Next() bool {
	for c.idx--; c.idx >= 0; c.idx-- {
		if c.view.test(c.store.dense[c.idx]) {
			return true
		}
	}
	return false
}

// Entity returns the current entity.
func (c *Cursor3[T1, T2, T3]) Entity() Entity {
	return c.store.dense[c.idx]
}

// Get returns pointers to the current entity's components.
func (c *Cursor3[T1, T2, T3]) Get() (*T1, *T2, *T3) {
	e := c.store.dense[c.idx]
	return c.view.p1.get(e), c.view.p2.get(e), c.view.p3.get(e)
}

// View4 iterates all entities that own the 4 components T1, T2, T3, T4 and
// none of the excluded components.
type View4[T1 any, T2 any, T3 any, T4 any] struct {
	p1   *pool[T1]
	p2   *pool[T2]
	p3   *pool[T3]
	p4   *pool[T4]
	excl exclusionList
}

// NewView4 creates a view over entities owning the 4 components T1, T2, T3,
// T4, minus entities owning any component in excludes.
func NewView4[T1 any, T2 any, T3 any, T4 any](r *Registry, excludes ...ComponentID) *View4[T1, T2, T3, T4] {
	return &View4[T1, T2, T3, T4]{
		p1:   poolFor[T1](r),
		p2:   poolFor[T2](r),
		p3:   poolFor[T3](r),
		p4:   poolFor[T4](r),
		excl: exclusionList{reg: r, ids: excludes},
	}
}

func (v *View4[T1, T2, T3, T4]) pivot() *entityStore {
	return pivotOf(&v.p1.entityStore, &v.p2.entityStore, &v.p3.entityStore, &v.p4.entityStore)
}

func (v *View4[T1, T2, T3, T4]) test(e Entity) bool {
	return v.p1.contains(e) && v.p2.contains(e) && v.p3.contains(e) && v.p4.contains(e) &&
		!v.excl.contains(e)
}

// Contains reports whether e satisfies the view's predicate.
func (v *View4[T1, T2, T3, T4]) Contains(e Entity) bool {
	return v.test(e)
}

// Size returns the number of entities satisfying the predicate; full scan of
// the pivot pool.
func (v *View4[T1, T2, T3, T4]) Size() int {
	n := 0
	for _, e := range v.pivot().dense {
		if v.test(e) {
			n++
		}
	}
	return n
}

// Empty reports whether no entity satisfies the predicate.
func (v *View4[T1, T2, T3, T4]) Empty() bool {
	for _, e := range v.pivot().dense {
		if v.test(e) {
			return false
		}
	}
	return true
}

// Get returns pointers to the components of e. Precondition: Contains(e).
func (v *View4[T1, T2, T3, T4]) Get(e Entity) (*T1, *T2, *T3, *T4) {
	return v.p1.get(e), v.p2.get(e), v.p3.get(e), v.p4.get(e)
}

// At returns the entity at pivot iteration position i without applying the
// predicate. Positional, not filtered.
func (v *View4[T1, T2, T3, T4]) At(i int) Entity {
	return v.pivot().at(i)
}

// Each invokes fn once per entity satisfying the predicate, in pivot
// iteration order.
func (v *View4[T1, T2, T3, T4]) Each(fn func(Entity, *T1, *T2, *T3, *T4)) {
	pivot := v.pivot()
	for i := len(pivot.dense) - 1; i >= 0; i-- {
		if e := pivot.dense[i]; v.test(e) {
			fn(e, v.p1.get(e), v.p2.get(e), v.p3.get(e), v.p4.get(e))
		}
	}
}

// Iter returns a cursor positioned before the first entity.
func (v *View4[T1, T2, T3, T4]) Iter() *Cursor4[T1, T2, T3, T4] {
	pivot := v.pivot()
	return &Cursor4[T1, T2, T3, T4]{view: v, store: pivot, idx: len(pivot.dense)}
}

// Find returns a cursor positioned at e, or ok == false when e does not
// satisfy the predicate.
func (v *View4[T1, T2, T3, T4]) Find(e Entity) (*Cursor4[T1, T2, T3, T4], bool) {
	pivot := v.pivot()
	if !v.test(e) {
		return &Cursor4[T1, T2, T3, T4]{view: v, store: pivot, idx: -1}, false
	}
	return &Cursor4[T1, T2, T3, T4]{view: v, store: pivot, idx: pivot.position(e)}, true
}

// Cursor4 walks a View4.
type Cursor4[T1 any, T2 any, T3 any, T4 any] struct {
	view  *View4[T1, T2, T3, T4]
	store *entityStore
	idx   int
}

// Next advances past entities failing the predicate to the next match.
func (c *Cursor4[T1, T2, T3, T4]) Next() bool {
	for c.idx--; c.idx >= 0; c.idx-- {
		if c.view.test(c.store.dense[c.idx]) {
			return true
		}
	}
	return false
}

// Entity returns the current entity.
func (c *Cursor4[T1, T2, T3, T4]) Entity() Entity {
	return c.store.dense[c.idx]
}

// Get returns pointers to the current entity's components.
func (c *Cursor4[T1, T2, T3, T4]) Get() (*T1, *T2, *T3, *T4) {
	e := c.store.dense[c.idx]
	return c.view.p1.get(e), c.view.p2.get(e), c.view.p3.get(e), c.view.p4.get(e)
}
