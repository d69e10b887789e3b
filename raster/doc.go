// Package raster holds elevation grids and reads them from disk.
//
// An Elevation is a flat, row-major []float64 of width×height samples with
// an affine geo.GeoTransform placing it on the map. Row 0 is the northern
// edge. Elevation satisfies reach.Grid; cells equal to the no-data value, and
// NaN samples, read as +Inf so every finite threshold treats them as
// impassable.
//
// Two on-disk formats are supported:
//
//   - ESRI ASCII grid (.asc): the ncols/nrows/xllcorner/yllcorner/cellsize
//     header followed by nrows lines of samples, north first.
//   - YAML descriptor (.yaml, .yml): georeferencing metadata pointing at a
//     CSV file of samples, one row per line, north first.
//
// An Elevation is never mutated after construction and is safe to share
// across goroutines.
package raster
