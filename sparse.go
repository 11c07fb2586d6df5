package tansu

// absent marks an unused slot in the sparse array.
const absent = int32(-1)

// entityStore is the sparse-set half of a pool: a dense array of entities
// plus a sparse array mapping entity index to dense position. Membership,
// insertion and removal are all O(1). Removal is swap-and-pop, so the
// relative order of surviving entities is not preserved across a removal.
//
// The sparse array grows to the largest entity index ever inserted and keeps
// the full handle in dense, so a lookup with a stale (recycled) handle fails
// the version comparison and reports absence.
type entityStore struct {
	sparse []int32
	dense  []Entity
}

// contains reports whether e is in the set. Never fails, O(1).
func (s *entityStore) contains(e Entity) bool {
	idx := e.Index()
	if int(idx) >= len(s.sparse) {
		return false
	}
	pos := s.sparse[idx]
	return pos != absent && s.dense[pos] == e
}

// position returns e's slot in the dense array. Precondition: contains(e).
func (s *entityStore) position(e Entity) int {
	return int(s.sparse[e.Index()])
}

// push appends e to the dense array. Precondition: !contains(e).
func (s *entityStore) push(e Entity) {
	idx := int(e.Index())
	if idx >= len(s.sparse) {
		grown := extendSlice(s.sparse, idx+1-len(s.sparse))
		for i := len(s.sparse); i < len(grown); i++ {
			grown[i] = absent
		}
		s.sparse = grown
	}
	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, e)
}

// swapPop removes e by overwriting its slot with the last entity and
// truncating the tail. It returns the dense slot that was vacated so a pool
// can mirror the move in its component array. Precondition: contains(e).
func (s *entityStore) swapPop(e Entity) int {
	pos := int(s.sparse[e.Index()])
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[pos] = moved
	s.sparse[moved.Index()] = int32(pos)
	s.dense = s.dense[:last]
	s.sparse[e.Index()] = absent
	return pos
}

// size returns the number of entities in the set.
func (s *entityStore) size() int {
	return len(s.dense)
}

// at returns the entity at iteration position i. Iteration runs over the
// dense array in reverse, so position 0 is the last dense slot.
func (s *entityStore) at(i int) Entity {
	return s.dense[len(s.dense)-1-i]
}

// rebuildSparse recomputes every sparse slot from the dense array. Called
// after a reordering that touched the whole dense array.
func (s *entityStore) rebuildSparse() {
	for i, e := range s.dense {
		s.sparse[e.Index()] = int32(i)
	}
}

// respect reorders the set so that entities shared with other keep other's
// relative order. Entities not present in other stay in front of the shared
// ones, preserving their own relative order; reverse iteration therefore
// visits the shared entities first, in other's iteration order.
func (s *entityStore) respect(other *entityStore) {
	next := make([]Entity, 0, len(s.dense))
	for _, e := range s.dense {
		if !other.contains(e) {
			next = append(next, e)
		}
	}
	for _, e := range other.dense {
		if s.contains(e) {
			next = append(next, e)
		}
	}
	s.dense = next
	s.rebuildSparse()
}

// reset empties the set without releasing the sparse array.
func (s *entityStore) reset() {
	for _, e := range s.dense {
		s.sparse[e.Index()] = absent
	}
	s.dense = s.dense[:0]
}
