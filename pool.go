package tansu

import "sort"

// storage is the type-erased face of a pool. The registry uses it to destroy
// entities across every pool, and runtime views use it to run the
// intersection algorithm over component sets chosen at run time.
type storage interface {
	container() *entityStore
	erase(Entity)
	clear()
	onConstruct() *signal
	onDestroy() *signal
}

// pool owns the storage for exactly one component type: the sparse set of
// owning entities plus a dense component array aligned 1:1 with the entity
// array. Both arrays reorder together, so len(dense) == len(packed) holds at
// every return.
type pool[T any] struct {
	entityStore
	packed       []T
	construction signal
	destruction  signal
}

// assign stores v for e and notifies listeners. Precondition: !contains(e).
func (p *pool[T]) assign(e Entity, v T) *T {
	if p.contains(e) {
		panic("tansu: component already assigned to entity")
	}
	p.push(e)
	p.packed = append(p.packed, v)
	p.construction.publish(e)
	return &p.packed[len(p.packed)-1]
}

// replace overwrites the component of e. Precondition: contains(e).
func (p *pool[T]) replace(e Entity, v T) *T {
	ref := p.get(e)
	*ref = v
	return ref
}

// get returns a reference into the component array. Precondition: contains(e).
func (p *pool[T]) get(e Entity) *T {
	if !p.contains(e) {
		panic("tansu: entity does not own the requested component")
	}
	return &p.packed[p.position(e)]
}

// erase removes e with swap-and-pop, mirroring the move in the component
// array, then notifies listeners. The listeners observe the pool with e
// already gone. Precondition: contains(e).
func (p *pool[T]) erase(e Entity) {
	if !p.contains(e) {
		panic("tansu: entity does not own the component to remove")
	}
	pos := p.swapPop(e)
	last := len(p.packed) - 1
	p.packed[pos] = p.packed[last]
	var zero T
	p.packed[last] = zero
	p.packed = p.packed[:last]
	p.destruction.publish(e)
}

// clear removes every entity, notifying listeners one by one.
func (p *pool[T]) clear() {
	for len(p.dense) > 0 {
		p.erase(p.dense[len(p.dense)-1])
	}
}

// sortBy reorders entity and component arrays together so that iteration
// visits components in ascending order of less. Not stable.
func (p *pool[T]) sortBy(less func(a, b T) bool) {
	sort.Sort(poolSorter[T]{p: p, less: less})
	p.rebuildSparse()
}

func (p *pool[T]) container() *entityStore {
	return &p.entityStore
}

func (p *pool[T]) onConstruct() *signal {
	return &p.construction
}

func (p *pool[T]) onDestroy() *signal {
	return &p.destruction
}

// poolSorter co-sorts the dense and packed arrays. Iteration runs over the
// dense array in reverse, so the comparator is inverted to make iteration
// order ascending.
type poolSorter[T any] struct {
	p    *pool[T]
	less func(a, b T) bool
}

func (s poolSorter[T]) Len() int {
	return len(s.p.dense)
}

func (s poolSorter[T]) Less(i, j int) bool {
	return s.less(s.p.packed[j], s.p.packed[i])
}

func (s poolSorter[T]) Swap(i, j int) {
	s.p.dense[i], s.p.dense[j] = s.p.dense[j], s.p.dense[i]
	s.p.packed[i], s.p.packed[j] = s.p.packed[j], s.p.packed[i]
}
