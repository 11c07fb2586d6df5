package tansu

import "reflect"

// MaxComponentTypes defines the maximum number of unique component types that
// can be registered in a Registry. This value is fixed at 256.
const MaxComponentTypes = 256

// ComponentID is an opaque, comparable token identifying a component type
// within one Registry. Runtime views consume sequences of these tokens.
type ComponentID uint8

// Registry allocates entity handles, recycles them with a generation bump so
// stale handles go dead, and owns one pool per component type. All component
// access goes through the package-level generic functions, which follow the
// registry's type-token table.
type Registry struct {
	typeIDs  map[reflect.Type]ComponentID
	versions []uint32 // per entity index; 0 marks a dead or never-used slot
	free     []uint32 // stack of recyclable entity indexes
	pools    [MaxComponentTypes]storage
	ctors    [MaxComponentTypes]func() storage
	nextVer  uint32
	nextType uint16
}

// NewRegistry creates a Registry with pre-allocated room for initialCapacity
// entities. Choosing a suitable capacity avoids re-allocations at runtime.
func NewRegistry(initialCapacity int) *Registry {
	r := &Registry{
		typeIDs:  make(map[reflect.Type]ComponentID, 16),
		versions: make([]uint32, initialCapacity),
		free:     make([]uint32, initialCapacity),
		nextVer:  1,
	}
	for i := range r.free {
		r.free[i] = uint32(initialCapacity - 1 - i)
	}
	return r
}

// Create returns a fresh entity handle. Indexes of destroyed entities are
// reused with a new generation, so handles to the destroyed entity stay dead.
func (r *Registry) Create() Entity {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.versions))
		r.versions = append(r.versions, 0)
	}
	v := r.nextVer
	r.nextVer++
	r.versions[idx] = v
	return makeEntity(idx, v)
}

// Destroy removes every component of e, then kills the handle and recycles
// its index. Precondition: Valid(e).
func (r *Registry) Destroy(e Entity) {
	if !r.Valid(e) {
		panic("tansu: cannot destroy an invalid entity")
	}
	for _, p := range r.pools {
		if p != nil && p.container().contains(e) {
			p.erase(e)
		}
	}
	r.versions[e.Index()] = 0
	r.free = append(r.free, e.Index())
}

// Valid reports whether e refers to a live entity of this registry.
func (r *Registry) Valid(e Entity) bool {
	idx := e.Index()
	if int(idx) >= len(r.versions) {
		return false
	}
	v := r.versions[idx]
	return v != 0 && v == e.Version()
}

// Alive returns the number of live entities.
func (r *Registry) Alive() int {
	return len(r.versions) - len(r.free)
}

// Each invokes fn for every live entity. Creating or destroying entities from
// within fn is not supported.
func (r *Registry) Each(fn func(Entity)) {
	for idx, v := range r.versions {
		if v != 0 {
			fn(makeEntity(uint32(idx), v))
		}
	}
}

// typeIndex assigns or fetches the component ID of t.
func (r *Registry) typeIndex(t reflect.Type) ComponentID {
	if id, ok := r.typeIDs[t]; ok {
		return id
	}
	if r.nextType >= MaxComponentTypes {
		panic("tansu: too many component types")
	}
	id := ComponentID(r.nextType)
	r.typeIDs[t] = id
	r.nextType++
	return id
}

// TypeOf returns the component ID for T, assigning one on first use. The ID
// alone does not materialize a pool; a runtime view over an ID whose pool was
// never materialized is empty.
func TypeOf[T any](r *Registry) ComponentID {
	id := r.typeIndex(reflect.TypeOf((*T)(nil)).Elem())
	if r.ctors[id] == nil {
		r.ctors[id] = func() storage { return &pool[T]{} }
	}
	return id
}

// poolFor returns the pool for T, materializing it on first use.
func poolFor[T any](r *Registry) *pool[T] {
	id := TypeOf[T](r)
	if r.pools[id] == nil {
		r.pools[id] = &pool[T]{}
	}
	return r.pools[id].(*pool[T])
}

// materialize forces the pool behind id into existence. Persistent views use
// it on their excluded types, so an exclusion keeps working after the first
// component of that type is assigned.
func (r *Registry) materialize(id ComponentID) storage {
	if r.pools[id] == nil {
		r.pools[id] = r.ctors[id]()
	}
	return r.pools[id]
}

// materializeAll resolves a token sequence to live pools.
func (r *Registry) materializeAll(ids []ComponentID) []storage {
	pools := make([]storage, len(ids))
	for i, id := range ids {
		pools[i] = r.materialize(id)
	}
	return pools
}

// Assign stores a component of type T for e and returns a pointer to the
// stored value. Preconditions: Valid(e) and e does not already own a T.
func Assign[T any](r *Registry, e Entity, v T) *T {
	if !r.Valid(e) {
		panic("tansu: cannot assign a component to an invalid entity")
	}
	return poolFor[T](r).assign(e, v)
}

// Replace overwrites the component of type T owned by e. Precondition: e owns
// a T.
func Replace[T any](r *Registry, e Entity, v T) *T {
	return poolFor[T](r).replace(e, v)
}

// Remove discards the component of type T owned by e. Precondition: e owns
// a T.
func Remove[T any](r *Registry, e Entity) {
	poolFor[T](r).erase(e)
}

// Has reports whether e currently owns a component of type T. Stale handles
// fail the generation comparison and report false.
func Has[T any](r *Registry, e Entity) bool {
	id, ok := r.typeIDs[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok || r.pools[id] == nil {
		return false
	}
	return r.pools[id].container().contains(e)
}

// Get returns a pointer to the component of type T owned by e. Precondition:
// e owns a T.
func Get[T any](r *Registry, e Entity) *T {
	return poolFor[T](r).get(e)
}

// Clear removes the component of type T from every entity that owns one.
func Clear[T any](r *Registry) {
	poolFor[T](r).clear()
}

// SortPool reorders the pool of T so that iteration visits components in
// ascending order of less. Views recomputing their membership lazily pick up
// the new order on the next pass; persistent views mirror it through SortView.
func SortPool[T any](r *Registry, less func(a, b T) bool) {
	poolFor[T](r).sortBy(less)
}
