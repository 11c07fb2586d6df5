package tansu

// RuntimeView runs the same intersection algorithm as the compile-time views,
// but over a component set chosen at run time: an ordered sequence of
// component IDs rather than a type parameter list. Component access is not
// part of its contract; it delivers entities only, and callers resolve
// components themselves afterwards.
//
// The pools are resolved once, at construction. A requested ID whose pool was
// never materialized pins the view empty, as does an empty ID sequence.
// Duplicate IDs are redundant predicates and are dropped.
type RuntimeView struct {
	required []storage
	excluded []storage
	dead     bool
}

// NewRuntimeView creates a view over entities owning every component in
// include and none in excludes.
func NewRuntimeView(r *Registry, include []ComponentID, excludes ...ComponentID) *RuntimeView {
	v := &RuntimeView{dead: len(include) == 0}
	var seen bitmask256
	for _, id := range include {
		if seen.containsBit(uint8(id)) {
			continue
		}
		seen.set(uint8(id))
		p := r.pools[id]
		if p == nil {
			v.dead = true
			continue
		}
		v.required = append(v.required, p)
	}
	var seenExcl bitmask256
	for _, id := range excludes {
		if seenExcl.containsBit(uint8(id)) {
			continue
		}
		seenExcl.set(uint8(id))
		if p := r.pools[id]; p != nil {
			v.excluded = append(v.excluded, p)
		}
	}
	return v
}

// pivot returns the smallest required store. Precondition: !v.dead.
func (v *RuntimeView) pivot() *entityStore {
	pivot := v.required[0].container()
	for _, p := range v.required[1:] {
		if s := p.container(); s.size() < pivot.size() {
			pivot = s
		}
	}
	return pivot
}

// test applies the full predicate to e.
func (v *RuntimeView) test(e Entity) bool {
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

// Contains reports whether e satisfies the view's predicate.
func (v *RuntimeView) Contains(e Entity) bool {
	return !v.dead && v.test(e)
}

// Size returns the number of entities satisfying the predicate; full scan of
// the pivot pool.
func (v *RuntimeView) Size() int {
	if v.dead {
		return 0
	}
	n := 0
	for _, e := range v.pivot().dense {
		if v.test(e) {
			n++
		}
	}
	return n
}

// Empty reports whether no entity satisfies the predicate.
func (v *RuntimeView) Empty() bool {
	if v.dead {
		return true
	}
	for _, e := range v.pivot().dense {
		if v.test(e) {
			return false
		}
	}
	return true
}

// Each invokes fn once per entity satisfying the predicate, in pivot
// iteration order. Removing the current entity from within fn is safe.
func (v *RuntimeView) Each(fn func(Entity)) {
	if v.dead {
		return
	}
	pivot := v.pivot()
	for i := len(pivot.dense) - 1; i >= 0; i-- {
		if e := pivot.dense[i]; v.test(e) {
			fn(e)
		}
	}
}

// Iter returns a cursor positioned before the first entity. The pivot is
// fixed when the cursor is created.
func (v *RuntimeView) Iter() *RuntimeCursor {
	if v.dead {
		return &RuntimeCursor{view: v, idx: -1}
	}
	pivot := v.pivot()
	return &RuntimeCursor{view: v, store: pivot, idx: len(pivot.dense)}
}

// Find returns a cursor positioned at e, or ok == false when e does not
// satisfy the predicate.
func (v *RuntimeView) Find(e Entity) (*RuntimeCursor, bool) {
	if v.dead || !v.test(e) {
		return &RuntimeCursor{view: v, idx: -1}, false
	}
	pivot := v.pivot()
	return &RuntimeCursor{view: v, store: pivot, idx: pivot.position(e)}, true
}

// RuntimeCursor walks a RuntimeView. Call Next before the first access
// unless the cursor came from Find.
type RuntimeCursor struct {
	view  *RuntimeView
	store *entityStore
	idx   int
}

// Next advances past entities failing the predicate to the next match.
func (c *RuntimeCursor) Next() bool {
	for c.idx--; c.idx >= 0; c.idx-- {
		if c.view.test(c.store.dense[c.idx]) {
			return true
		}
	}
	return false
}

// Entity returns the current entity.
func (c *RuntimeCursor) Entity() Entity {
	return c.store.dense[c.idx]
}
