// Package vectorize turns a reachability mask into polygons.
//
// Set cells are grouped into 4-connected components. The boundary of each
// component is traced along pixel edges into one exterior ring and zero or
// more holes. Rings are closed (first point repeated last) and carry only
// corner vertices.
//
// Coordinates produced by Trace are pixel corners: cell (x, y) spans
// [x, x+1] × [y, y+1] with y growing southward. ToMap applies a
// geo.GeoTransform and orients rings so that, in the map's y-up frame,
// exteriors run counter-clockwise and holes clockwise, as GeoJSON expects.
//
// Two cells that touch only at a corner belong to different components,
// and their rings meet at that vertex without merging.
package vectorize
