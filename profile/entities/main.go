// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/mizuhane/tansu"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	count := 50
	iters := 10000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(count, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for n := 0; n < rounds; n++ {
		r := tansu.NewRegistry(numEntities)
		view := tansu.NewView2[comp1, comp2](r)

		for j := 0; j < iters; j++ {
			for k := 0; k < numEntities; k++ {
				e := r.Create()
				tansu.Assign(r, e, comp1{V: 1})
				tansu.Assign(r, e, comp2{V: 1})
			}
			entities := []tansu.Entity{}
			for it := view.Iter(); it.Next(); {
				entities = append(entities, it.Entity())
				c1, c2 := it.Get()
				c1.V += c2.V
				c1.W += c2.W
			}
			for _, e := range entities {
				r.Destroy(e)
			}
		}
	}
}
