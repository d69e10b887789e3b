package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/terrareach/geo"
)

// Sentinel errors returned by constructors and readers.
var (
	// ErrEmptyRaster indicates a raster with no samples.
	ErrEmptyRaster = errors.New("raster: empty raster")
	// ErrNonRectangular indicates rows of differing lengths or a sample
	// count that does not match width×height.
	ErrNonRectangular = errors.New("raster: non-rectangular data")
	// ErrBadHeader indicates a missing or malformed header field.
	ErrBadHeader = errors.New("raster: bad header")
	// ErrBadValue indicates a sample that does not parse as a number.
	ErrBadValue = errors.New("raster: bad sample value")
	// ErrUnsupportedFormat indicates an unknown file extension.
	ErrUnsupportedFormat = errors.New("raster: unsupported format")
)

// Elevation is an immutable elevation grid.
type Elevation struct {
	width, height int
	values        []float64

	// Transform places cell corners on the map.
	Transform geo.GeoTransform
	// CRS tells whether Transform is in metres or degrees.
	CRS geo.CRSKind
	// NoData, when non-nil, marks samples that carry no elevation.
	NoData *float64
}

// New wraps values as a width×height grid with a unit north-up transform
// at the origin. values is copied.
func New(width, height int, values []float64) (*Elevation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyRaster, width, height)
	}
	if width > math.MaxInt/height || len(values) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrNonRectangular, len(values), width, height)
	}
	return &Elevation{
		width:     width,
		height:    height,
		values:    append([]float64(nil), values...),
		Transform: geo.NewNorthUp(0, 0, 1, 1),
	}, nil
}

// FromRows builds a grid from rows[y][x].
func FromRows(rows [][]float64) (*Elevation, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyRaster
	}
	w := len(rows[0])
	values := make([]float64, 0, w*len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrNonRectangular, y, len(row), w)
		}
		values = append(values, row...)
	}
	return &Elevation{
		width:     w,
		height:    len(rows),
		values:    values,
		Transform: geo.NewNorthUp(0, 0, 1, 1),
	}, nil
}

// Width returns the number of columns.
func (e *Elevation) Width() int { return e.width }

// Height returns the number of rows.
func (e *Elevation) Height() int { return e.height }

// Elevation returns the sample at (x, y), or +Inf for no-data cells.
// (x, y) must be in bounds.
func (e *Elevation) Elevation(x, y int) float64 {
	v := e.values[y*e.width+x]
	if math.IsNaN(v) || (e.NoData != nil && v == *e.NoData) {
		return math.Inf(1)
	}
	return v
}

// InBounds reports whether (x, y) is a cell of e.
func (e *Elevation) InBounds(x, y int) bool {
	return x >= 0 && x < e.width && y >= 0 && y < e.height
}

// CellAt returns the cell containing map point p.
func (e *Elevation) CellAt(p geo.Point) (x, y int, err error) {
	return e.Transform.CellIndex(p)
}

// CellSizeMeters returns the ground length of one orthogonal step near p.
func (e *Elevation) CellSizeMeters(p geo.Point) float64 {
	return geo.CellSizeMeters(e.Transform, e.CRS, p)
}

// Range returns the lowest and highest data samples. ok is false when
// every cell is no-data.
func (e *Elevation) Range() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			v := e.Elevation(x, y)
			if math.IsInf(v, 1) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}
