// Package tansu is a sparse-set entity/component store. Each component type
// lives in its own pool, and composable views iterate the entities that
// satisfy a combination of component-presence predicates.
package tansu

import "math"

// Entity is a unique identifier for an object in a Registry. The low 32 bits
// are a recyclable index, the high 32 bits a generation counter so stale
// handles cannot be confused with entities that reuse the same index.
type Entity uint64

// Null is the tombstone handle. It compares unequal to every entity a
// Registry ever produces.
const Null = Entity(math.MaxUint64)

// Index returns the recyclable index part of the handle.
func (e Entity) Index() uint32 {
	return uint32(e)
}

// Version returns the generation part of the handle.
func (e Entity) Version() uint32 {
	return uint32(e >> 32)
}

// makeEntity packs an index and a version into a handle.
func makeEntity(index, version uint32) Entity {
	return Entity(index) | Entity(version)<<32
}
