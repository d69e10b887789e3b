// Package geo converts between map coordinates and raster cell indices.
//
// A GeoTransform follows the GDAL convention:
//
//	mapX = t[0] + col*t[1] + row*t[2]
//	mapY = t[3] + col*t[4] + row*t[5]
//
// For a north-up raster t[2] = t[4] = 0 and t[5] is negative.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for coordinate conversion.
var (
	// ErrSingularTransform indicates a GeoTransform with zero determinant.
	ErrSingularTransform = errors.New("geo: transform is not invertible")
	// ErrNonFinite indicates a NaN or infinite coordinate.
	ErrNonFinite = errors.New("geo: coordinate is not finite")
)

// EarthRadiusMeters is the mean Earth radius used by HaversineMeters.
const EarthRadiusMeters = 6371008.8

// Point is a map coordinate. For geographic data X is longitude and Y is
// latitude, both in degrees.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// CRSKind tells whether map units are metres or degrees.
type CRSKind int

const (
	// Projected map units are metres.
	Projected CRSKind = iota
	// Geographic map units are degrees of longitude/latitude.
	Geographic
)

// String returns "projected" or "geographic".
func (k CRSKind) String() string {
	if k == Geographic {
		return "geographic"
	}
	return "projected"
}

// ParseCRSKind accepts "projected", "meters", "geographic" or "degrees".
func ParseCRSKind(s string) (CRSKind, error) {
	switch s {
	case "", "projected", "meters", "metres":
		return Projected, nil
	case "geographic", "degrees":
		return Geographic, nil
	}
	return 0, fmt.Errorf("geo: unknown crs kind %q", s)
}

// GeoTransform is the affine pixel→map transform in GDAL order.
type GeoTransform [6]float64

// NewNorthUp returns the transform of a north-up raster whose top-left
// corner is at (originX, originY) with cells cellW wide and cellH tall.
func NewNorthUp(originX, originY, cellW, cellH float64) GeoTransform {
	return GeoTransform{originX, cellW, 0, originY, 0, -cellH}
}

// PixelToMap maps a fractional (col, row) to map coordinates.
func (t GeoTransform) PixelToMap(col, row float64) Point {
	return Point{
		X: t[0] + col*t[1] + row*t[2],
		Y: t[3] + col*t[4] + row*t[5],
	}
}

// MapToPixel maps p to fractional (col, row).
func (t GeoTransform) MapToPixel(p Point) (col, row float64, err error) {
	if !finite(p.X) || !finite(p.Y) {
		return 0, 0, fmt.Errorf("%w: (%v, %v)", ErrNonFinite, p.X, p.Y)
	}
	det := t[1]*t[5] - t[2]*t[4]
	if det == 0 || !finite(det) {
		return 0, 0, ErrSingularTransform
	}
	dx, dy := p.X-t[0], p.Y-t[3]
	col = (dx*t[5] - dy*t[2]) / det
	row = (dy*t[1] - dx*t[4]) / det
	return col, row, nil
}

// CellIndex returns the integer cell containing p. The result may lie
// outside the raster; callers check bounds.
func (t GeoTransform) CellIndex(p Point) (x, y int, err error) {
	col, row, err := t.MapToPixel(p)
	if err != nil {
		return 0, 0, err
	}
	return int(math.Floor(col)), int(math.Floor(row)), nil
}

// CellCenter returns the map coordinate of the center of cell (x, y).
func (t GeoTransform) CellCenter(x, y int) Point {
	return t.PixelToMap(float64(x)+0.5, float64(y)+0.5)
}

// PixelSize returns the length of one cell step along columns and rows,
// in map units.
func (t GeoTransform) PixelSize() (w, h float64) {
	return math.Hypot(t[1], t[4]), math.Hypot(t[2], t[5])
}

// HaversineMeters returns the great-circle distance between two lon/lat
// points given in degrees.
func HaversineMeters(a, b Point) float64 {
	lat1, lat2 := a.Y*math.Pi/180, b.Y*math.Pi/180
	dLat := lat2 - lat1
	dLon := (b.X - a.X) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

// CellSizeMeters returns the edge length, in metres, of one grid step
// near at. Projected rasters use the column step directly. Geographic
// rasters measure the cell around at on the sphere and average its width
// and height.
func CellSizeMeters(t GeoTransform, kind CRSKind, at Point) float64 {
	w, _ := t.PixelSize()
	if kind == Projected {
		return w
	}
	col, row, err := t.MapToPixel(at)
	if err != nil {
		return 0
	}
	origin := t.PixelToMap(col, row)
	east := HaversineMeters(origin, t.PixelToMap(col+1, row))
	south := HaversineMeters(origin, t.PixelToMap(col, row+1))
	return (east + south) / 2
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
