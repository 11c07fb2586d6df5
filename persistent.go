package tansu

// PersistentView is the incrementally-maintained view core: it owns a sparse
// set whose membership always equals "in every required pool AND in no
// excluded pool". The index is kept in sync by pool signals, fired after each
// mutation and before the mutating call returns, so readers never observe
// stale state. Size is O(1) and iteration touches no pool but the index.
//
// Views hold no ownership over pools; the pools must outlive the view.
// Release disconnects the view from its pools when it is no longer needed.
type PersistentView struct {
	required []storage
	excluded []storage
	conns    []indexConn
	index    entityStore
}

// indexConn remembers a signal subscription so Release can undo it.
type indexConn struct {
	sig *signal
	id  int
}

// newPersistentView wires the index to the pools and seeds it from the
// current pool contents.
func newPersistentView(required, excluded []storage) *PersistentView {
	if len(required) == 0 {
		panic("tansu: persistent view requires at least one component type")
	}
	v := &PersistentView{required: required, excluded: excluded}
	for _, p := range required {
		v.connect(p.onConstruct(), v.candidate)
		v.connect(p.onDestroy(), v.discard)
	}
	for _, p := range excluded {
		v.connect(p.onConstruct(), v.discard)
		v.connect(p.onDestroy(), v.candidate)
	}
	pivot := required[0].container()
	for _, p := range required[1:] {
		if s := p.container(); s.size() < pivot.size() {
			pivot = s
		}
	}
	for _, e := range pivot.dense {
		if v.test(e) {
			v.index.push(e)
		}
	}
	return v
}

func (v *PersistentView) connect(sig *signal, fn func(Entity)) {
	v.conns = append(v.conns, indexConn{sig: sig, id: sig.connect(fn)})
}

// test applies the view predicate against the pools' current state.
func (v *PersistentView) test(e Entity) bool {
	for _, p := range v.required {
		if !p.container().contains(e) {
			return false
		}
	}
	for _, p := range v.excluded {
		if p.container().contains(e) {
			return false
		}
	}
	return true
}

// candidate admits e to the index if it now satisfies the predicate.
func (v *PersistentView) candidate(e Entity) {
	if !v.index.contains(e) && v.test(e) {
		v.index.push(e)
	}
}

// discard evicts e from the index if present.
func (v *PersistentView) discard(e Entity) {
	if v.index.contains(e) {
		v.index.swapPop(e)
	}
}

// Release disconnects the view from every pool it observes. The view stops
// tracking changes; reads after Release see the index frozen at release
// time.
func (v *PersistentView) Release() {
	for _, c := range v.conns {
		c.sig.disconnect(c.id)
	}
	v.conns = nil
}

// Size returns the number of entities in the view. O(1).
func (v *PersistentView) Size() int {
	return v.index.size()
}

// Empty reports whether the view has no entities.
func (v *PersistentView) Empty() bool {
	return v.index.size() == 0
}

// Contains reports whether e is in the view.
func (v *PersistentView) Contains(e Entity) bool {
	return v.index.contains(e)
}

// Data returns the view's backing entity array in dense order.
func (v *PersistentView) Data() []Entity {
	return v.index.dense
}

// At returns the entity at iteration position i.
func (v *PersistentView) At(i int) Entity {
	return v.index.at(i)
}

// EachEntity invokes fn once per entity in the view, in iteration order.
// Removing the current entity from within fn is safe.
func (v *PersistentView) EachEntity(fn func(Entity)) {
	for i := len(v.index.dense) - 1; i >= 0; i-- {
		fn(v.index.dense[i])
	}
}

// Iter returns a cursor positioned before the first entity.
func (v *PersistentView) Iter() *IndexCursor {
	return &IndexCursor{store: &v.index, idx: v.index.size()}
}

// Find returns a cursor positioned at e, or ok == false when e is not in the
// view. Advancing the cursor continues normal iteration from e's current
// position.
func (v *PersistentView) Find(e Entity) (*IndexCursor, bool) {
	if !v.index.contains(e) {
		return &IndexCursor{store: &v.index, idx: -1}, false
	}
	return &IndexCursor{store: &v.index, idx: v.index.position(e)}, true
}

// IndexCursor walks a maintained index. Every entity in the index satisfies
// the view predicate, so no skip-ahead is needed.
type IndexCursor struct {
	store *entityStore
	idx   int
}

// Next advances to the next entity. Returns false when iteration is done.
func (c *IndexCursor) Next() bool {
	c.idx--
	return c.idx >= 0
}

// Entity returns the current entity.
func (c *IndexCursor) Entity() Entity {
	return c.store.dense[c.idx]
}

// SortView sorts the pool of T with less, then permutes v's index to mirror
// the pool's new relative order: iterating the view afterwards visits
// entities in the same order as iterating the sorted pool, restricted to the
// view's members. Precondition: T is one of v's required component types.
func SortView[T any](r *Registry, v *PersistentView, less func(a, b T) bool) {
	p := poolFor[T](r)
	p.sortBy(less)
	v.index.respect(&p.entityStore)
}

// Persistent is a persistent view over the single component T with typed
// component access. Without exclusions it tracks the pool of T itself; its
// value lies in combining one required type with excluded ones.
type Persistent[T any] struct {
	*PersistentView
	p *pool[T]
}

// NewPersistent creates a persistent view over entities owning a component
// of type T, minus entities owning any component in excludes.
func NewPersistent[T any](r *Registry, excludes ...ComponentID) *Persistent[T] {
	p := poolFor[T](r)
	return &Persistent[T]{
		PersistentView: newPersistentView([]storage{p}, r.materializeAll(excludes)),
		p:              p,
	}
}

// Get returns a pointer to the component of e. Precondition: Contains(e).
func (v *Persistent[T]) Get(e Entity) *T {
	return v.p.get(e)
}

// Each invokes fn once per entity in the view, in iteration order.
func (v *Persistent[T]) Each(fn func(Entity, *T)) {
	for i := len(v.index.dense) - 1; i >= 0; i-- {
		e := v.index.dense[i]
		fn(e, v.p.get(e))
	}
}

// Persistent2 is a persistent view over the 2 components T1, T2 with typed
// component access.
type Persistent2[T1 any, T2 any] struct {
	*PersistentView
	p1 *pool[T1]
	p2 *pool[T2]
}

// NewPersistent2 creates a persistent view over entities owning the 2
// components T1, T2, minus entities owning any component in excludes. The
// excluded pools are materialized so components assigned later still evict.
func NewPersistent2[T1 any, T2 any](r *Registry, excludes ...ComponentID) *Persistent2[T1, T2] {
	p1 := poolFor[T1](r)
	p2 := poolFor[T2](r)
	return &Persistent2[T1, T2]{
		PersistentView: newPersistentView([]storage{p1, p2}, r.materializeAll(excludes)),
		p1:             p1,
		p2:             p2,
	}
}

// Get returns pointers to the components of e. Precondition: Contains(e).
func (v *Persistent2[T1, T2]) Get(e Entity) (*T1, *T2) {
	return v.p1.get(e), v.p2.get(e)
}

// Each invokes fn once per entity in the view, in iteration order.
func (v *Persistent2[T1, T2]) Each(fn func(Entity, *T1, *T2)) {
	for i := len(v.index.dense) - 1; i >= 0; i-- {
		e := v.index.dense[i]
		fn(e, v.p1.get(e), v.p2.get(e))
	}
}

// Persistent3 is a persistent view over the 3 components T1, T2, T3 with
// typed component access.
type Persistent3[T1 any, T2 any, T3 any] struct {
	*PersistentView
	p1 *pool[T1]
	p2 *pool[T2]
	p3 *pool[T3]
}

// NewPersistent3 creates a persistent view over entities owning the 3
// components T1, T2, T3, minus entities owning any component in excludes.
func NewPersistent3[T1 any, T2 any, T3 any](r *Registry, excludes ...ComponentID) *Persistent3[T1, T2, T3] {
	p1 := poolFor[T1](r)
	p2 := poolFor[T2](r)
	p3 := poolFor[T3](r)
	return &Persistent3[T1, T2, T3]{
		PersistentView: newPersistentView([]storage{p1, p2, p3}, r.materializeAll(excludes)),
		p1:             p1,
		p2:             p2,
		p3:             p3,
	}
}

// Get returns pointers to the components of e. Precondition: Contains(e).
func (v *Persistent3[T1, T2, T3]) Get(e Entity) (*T1, *T2, *T3) {
	return v.p1.get(e), v.p2.get(e), v.p3.get(e)
}

// Each invokes fn once per entity in the view, in iteration order.
func (v *Persistent3[T1, T2, T3]) Each(fn func(Entity, *T1, *T2, *T3)) {
	for i := len(v.index.dense) - 1; i >= 0; i-- {
		e := v.index.dense[i]
		fn(e, v.p1.get(e), v.p2.get(e), v.p3.get(e))
	}
}
