package tansu_test

import (
	"testing"

	"github.com/mizuhane/tansu"
)

// go test -run ^TestSingleViewFunctionalities$ . -count 1
func TestSingleViewFunctionalities(t *testing.T) {
	r := tansu.NewRegistry(0)
	view := tansu.NewView[Position](r)

	e0 := r.Create()
	e1 := r.Create()

	if !view.Empty() {
		t.Fatal("View over an empty pool is not empty")
	}

	tansu.Assign(r, e1, Health{})
	tansu.Assign(r, e1, Position{X: 2})

	if view.Size() != 1 || view.Empty() {
		t.Fatalf("View size %d, want 1", view.Size())
	}

	tansu.Assign(r, e0, Position{X: 1})

	if view.Size() != 2 {
		t.Fatalf("View size %d, want 2", view.Size())
	}

	// Backing arrays are in insertion order.
	if view.Data()[0] != e1 || view.Data()[1] != e0 {
		t.Errorf("Data order %v, want [e1 e0]", view.Data())
	}
	if view.Raw()[0].X != 2 || view.Raw()[1].X != 1 {
		t.Errorf("Raw order mismatched with Data: %v", view.Raw())
	}

	tansu.Remove[Position](r, e0)
	tansu.Remove[Position](r, e1)

	if !view.Empty() {
		t.Error("View not empty after all components removed")
	}
}

// go test -run ^TestSingleViewIteration$ . -count 1
func TestSingleViewIteration(t *testing.T) {
	r := tansu.NewRegistry(0)
	e0 := r.Create()
	e1 := r.Create()
	tansu.Assign(r, e0, Position{X: 0})
	tansu.Assign(r, e1, Position{X: 1})

	view := tansu.NewView[Position](r)

	// Positional access mirrors iteration order, which is reverse of the
	// dense array.
	if view.At(0) != e1 || view.At(1) != e0 {
		t.Errorf("At order [%v %v], want [e1 e0]", view.At(0), view.At(1))
	}

	var visited []tansu.Entity
	for it := view.Iter(); it.Next(); {
		visited = append(visited, it.Entity())
	}
	if len(visited) != 2 || visited[0] != e1 || visited[1] != e0 {
		t.Errorf("Cursor visited %v, want [e1 e0]", visited)
	}

	cnt := 0
	view.Each(func(e tansu.Entity, p *Position) {
		if p.X != float32(e.Index()) {
			t.Errorf("Entity %v delivered with wrong component %v", e, *p)
		}
		cnt++
	})
	if cnt != 2 {
		t.Errorf("Each visited %d entities, want 2", cnt)
	}
}

// go test -run ^TestMultiViewPredicate$ . -count 1
func TestMultiViewPredicate(t *testing.T) {
	r := tansu.NewRegistry(0)
	view := tansu.NewView2[Position, Velocity](r)

	e0 := r.Create()
	tansu.Assign(r, e0, Velocity{})

	e1 := r.Create()
	tansu.Assign(r, e1, Position{X: 10})

	if !view.Empty() {
		t.Fatal("No entity owns both components yet")
	}

	tansu.Assign(r, e1, Velocity{VX: 5})

	if view.Size() != 1 {
		t.Fatalf("View size %d, want 1", view.Size())
	}
	if view.Contains(e0) || !view.Contains(e1) {
		t.Error("Contains disagrees with the predicate")
	}

	it := view.Iter()
	if !it.Next() {
		t.Fatal("Iteration found no entity")
	}
	if it.Entity() != e1 {
		t.Errorf("Iteration yielded %v, want %v", it.Entity(), e1)
	}
	p, v := it.Get()
	if p.X != 10 || v.VX != 5 {
		t.Errorf("Cursor components (%v, %v) incorrect", *p, *v)
	}
	if it.Next() {
		t.Error("Iteration yielded more than one entity")
	}
}

// go test -run ^TestMultiViewRemoveShrinks$ . -count 1
func TestMultiViewRemoveShrinks(t *testing.T) {
	r := tansu.NewRegistry(0)
	e0 := r.Create()
	e1 := r.Create()
	tansu.Assign(r, e0, Position{})
	tansu.Assign(r, e0, Velocity{})
	tansu.Assign(r, e1, Position{})
	tansu.Assign(r, e1, Velocity{})

	view := tansu.NewView2[Position, Velocity](r)
	if view.Size() != 2 {
		t.Fatalf("View size %d, want 2", view.Size())
	}

	tansu.Remove[Velocity](r, e0)

	if view.Size() != 1 {
		t.Fatalf("View size %d after removal, want 1", view.Size())
	}
	view.Each(func(e tansu.Entity, _ *Position, _ *Velocity) {
		if e != e1 {
			t.Errorf("Sole member is %v, want %v", e, e1)
		}
	})
}

// go test -run ^TestMultiViewEachWithHoles$ . -count 1
func TestMultiViewEachWithHoles(t *testing.T) {
	r := tansu.NewRegistry(0)
	e0 := r.Create()
	e1 := r.Create()
	e2 := r.Create()

	tansu.Assign(r, e0, Position{X: 0})
	tansu.Assign(r, e1, Position{X: 1})
	tansu.Assign(r, e0, Velocity{VX: 0})
	tansu.Assign(r, e2, Velocity{VX: 2})

	view := tansu.NewView2[Position, Velocity](r)
	view.Each(func(e tansu.Entity, p *Position, v *Velocity) {
		if e != e0 {
			t.Errorf("Each visited %v, only e0 has both components", e)
		}
		if p.X != 0 || v.VX != 0 {
			t.Errorf("Each delivered wrong components (%v, %v)", *p, *v)
		}
	})
}

// go test -run ^TestMultiViewFindThenAdvance$ . -count 1
func TestMultiViewFindThenAdvance(t *testing.T) {
	r := tansu.NewRegistry(0)
	entities := make([]tansu.Entity, 4)
	for i := range entities {
		entities[i] = r.Create()
		tansu.Assign(r, entities[i], Position{})
		tansu.Assign(r, entities[i], Velocity{})
	}
	e0, e1, e2, e3 := entities[0], entities[1], entities[2], entities[3]

	// Punch a hole: the swap-and-pop moves e3 into e1's dense slot.
	tansu.Remove[Position](r, e1)

	view := tansu.NewView2[Position, Velocity](r)
	if _, ok := view.Find(e1); ok {
		t.Fatal("Find located an entity outside the view")
	}
	for _, e := range []tansu.Entity{e0, e2, e3} {
		if _, ok := view.Find(e); !ok {
			t.Fatalf("Find missed member %v", e)
		}
	}

	it, _ := view.Find(e2)
	if it.Entity() != e2 {
		t.Fatalf("Find positioned at %v, want %v", it.Entity(), e2)
	}
	var rest []tansu.Entity
	for it.Next() {
		rest = append(rest, it.Entity())
	}
	if len(rest) != 2 || rest[0] != e3 || rest[1] != e0 {
		t.Errorf("Advance after Find visited %v, want [e3 e0]", rest)
	}

	// A cursor positioned at the last member reaches the end in one step.
	last, _ := view.Find(e0)
	if last.Next() {
		t.Error("Advancing past the final member did not end iteration")
	}

	// Find-then-advance agrees with a full walk from the beginning.
	var full []tansu.Entity
	for it := view.Iter(); it.Next(); {
		full = append(full, it.Entity())
	}
	if len(full) != 3 || full[0] != e2 || full[1] != e3 || full[2] != e0 {
		t.Errorf("Full iteration visited %v, want [e2 e3 e0]", full)
	}
}

// go test -run ^TestMultiViewExcludes$ . -count 1
func TestMultiViewExcludes(t *testing.T) {
	r := tansu.NewRegistry(0)
	view := tansu.NewView2[Position, Velocity](r, tansu.TypeOf[Health](r))

	plain := r.Create()
	tansu.Assign(r, plain, Position{})
	tansu.Assign(r, plain, Velocity{})

	tagged := r.Create()
	tansu.Assign(r, tagged, Position{})
	tansu.Assign(r, tagged, Velocity{})
	tansu.Assign(r, tagged, Health{})

	if view.Size() != 1 || !view.Contains(plain) || view.Contains(tagged) {
		t.Fatalf("Exclusion predicate wrong: size %d", view.Size())
	}

	// Excluding is dynamic: dropping the excluded component restores
	// membership, gaining it revokes membership.
	tansu.Remove[Health](r, tagged)
	tansu.Assign(r, plain, Health{})

	if !view.Contains(tagged) || view.Contains(plain) {
		t.Error("Exclusion did not track pool mutations")
	}
}

// go test -run ^TestMultiViewPositionalAccess$ . -count 1
func TestMultiViewPositionalAccess(t *testing.T) {
	r := tansu.NewRegistry(0)
	both := r.Create()
	tansu.Assign(r, both, Position{})
	tansu.Assign(r, both, Velocity{})
	posOnly := r.Create()
	tansu.Assign(r, posOnly, Position{})
	tansu.Assign(r, posOnly, Health{})
	tansu.Assign(r, r.Create(), Velocity{})

	view := tansu.NewView2[Position, Health](r)

	// At is positional over the pivot pool, not filtered: position 0 of the
	// Health pivot is posOnly (a member), but a view over Position+Velocity
	// would surface non-members the same way.
	if view.At(0) != posOnly {
		t.Errorf("At(0) == %v, want %v", view.At(0), posOnly)
	}

	// Positional, not filtered: the Position pivot of this view surfaces
	// posOnly at position 0 even though it fails the predicate.
	pv := tansu.NewView2[Position, Velocity](r)
	if got := pv.At(0); got != posOnly || pv.Contains(posOnly) {
		t.Errorf("At(0) == %v (member: %v), want the raw pivot slot %v", got, pv.Contains(posOnly), posOnly)
	}
	if got := pv.At(1); got != both {
		t.Errorf("At(1) == %v, want %v", got, both)
	}
}

// go test -run ^TestViewRemoveCurrentDuringIteration$ . -count 1
func TestViewRemoveCurrentDuringIteration(t *testing.T) {
	r := tansu.NewRegistry(0)
	alive := map[tansu.Entity]bool{}
	for i := 0; i < 8; i++ {
		e := r.Create()
		tansu.Assign(r, e, Health{Current: i})
		tansu.Assign(r, e, Tag{})
		alive[e] = true
	}

	view := tansu.NewView2[Health, Tag](r)
	visited := 0
	view.Each(func(e tansu.Entity, h *Health, _ *Tag) {
		visited++
		if h.Current%2 == 0 {
			tansu.Remove[Health](r, e)
			delete(alive, e)
		}
	})

	if visited != 8 {
		t.Errorf("Each visited %d entities under self-removal, want every one once", visited)
	}
	if view.Size() != len(alive) {
		t.Errorf("View size %d after removals, want %d", view.Size(), len(alive))
	}
	for e := range alive {
		if !view.Contains(e) {
			t.Errorf("Survivor %v lost its membership", e)
		}
	}
}
