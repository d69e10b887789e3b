package vectorize_test

import (
	"fmt"

	"github.com/katalvlaran/terrareach/geo"
	"github.com/katalvlaran/terrareach/reach"
	"github.com/katalvlaran/terrareach/vectorize"
)

// ExampleTrace outlines a ring of cells around a hole.
func ExampleTrace() {
	m := reach.NewMask(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x != 1 || y != 1 {
				m.Set(x, y)
			}
		}
	}

	for _, p := range vectorize.Trace(m) {
		fmt.Println("exterior:", p.Exterior)
		fmt.Println("holes:", len(p.Holes), "cells:", p.Cells)
	}

	// Output:
	// exterior: [{0 0} {0 3} {3 3} {3 0} {0 0}]
	// holes: 1 cells: 8
}

// ExampleToMap places a single cell on a 30 m north-up raster.
func ExampleToMap() {
	m := reach.NewMask(2, 2)
	m.Set(1, 0)

	polys := vectorize.ToMap(vectorize.Trace(m), geo.NewNorthUp(1000, 2000, 30, 30))
	fmt.Println(polys[0].Exterior)
	fmt.Println(polys[0].Area())

	// Output:
	// [{1030 2000} {1030 1970} {1060 1970} {1060 2000} {1030 2000}]
	// 900
}
