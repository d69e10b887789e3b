// Package terrareach computes how far a vehicle can travel over raster
// terrain from a single origin, given an elevation ceiling and a speed ×
// time allowance.
//
// A cell is passable when its elevation is strictly below the ceiling.
// Orthogonal steps cost 1 and diagonal steps cost √2, in cell units. The
// result is a bit mask over the raster, later traced into polygons.
//
// Packages:
//
//	reach/       cost-bounded grid search (Search, Mask, Result)
//	units/       speed × time → metres → grid budget
//	geo/         affine GeoTransform, haversine, cell size in metres
//	raster/      Elevation grid, ESRI ASCII and YAML+CSV loaders
//	vectorize/   components, boundary tracing, GeoJSON
//	process/     end-to-end request pipeline, batch execution, metrics
//	service/     gin HTTP host
//	config/      TOML configuration
//	cmd/         terrareach CLI: run, batch, serve
//
// Quick ASCII example (max elevation 500, budget 6, a ridge at x=3 where
// 9 stands for 900, with a pass in the bottom row):
//
//	elevation         reachable from (0,0)
//	0 0 0 9 0 0       # # # . . .
//	0 0 0 9 0 0       # # # . . .
//	0 0 0 9 0 0       # # # . # .
//	0 0 0 0 0 0       # # # # # .
//
//	go get github.com/katalvlaran/terrareach
package terrareach
