// Profiling:
// go build ./profile/views
// go tool pprof -http=":8000" -nodefraction=0.001 ./views cpu.prof

package main

import (
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/mizuhane/tansu"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type comp3 struct {
	V int64
	W int64
}

type comp4 struct {
	V int64
	W int64
}

func main() {
	// CPU Profiling
	f, _ := os.Create("cpu.prof")
	_ = pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	count := 50
	iters := 1000
	entities := 100000
	run(count, iters, entities)

	// Memory Profiling
	memFile, _ := os.Create("mem.prof")
	defer memFile.Close()
	runtime.GC() // Trigger garbage collection
	_ = pprof.WriteHeapProfile(memFile)
}

func run(rounds, iters, numEntities int) {
	for n := 0; n < rounds; n++ {
		r := tansu.NewRegistry(numEntities)
		view := tansu.NewView4[comp1, comp2, comp3, comp4](r)
		persistent := tansu.NewPersistent2[comp1, comp2](r)

		for i := 0; i < numEntities; i++ {
			e := r.Create()
			tansu.Assign(r, e, comp1{V: 1})
			tansu.Assign(r, e, comp2{V: 1})
			if i%2 == 0 {
				tansu.Assign(r, e, comp3{V: 1})
				tansu.Assign(r, e, comp4{V: 1})
			}
		}

		for j := 0; j < iters; j++ {
			view.Each(func(_ tansu.Entity, c1 *comp1, c2 *comp2, c3 *comp3, c4 *comp4) {
				c1.V += c2.V + c3.V + c4.V
			})
			persistent.Each(func(_ tansu.Entity, c1 *comp1, c2 *comp2) {
				c1.W += c2.W
			})
		}
	}
}
