// Package process runs one reachability computation end to end: it maps a
// geographic start point to a raster cell, turns speed and time into a
// cost budget, runs the grid search and vectorizes the resulting mask.
//
// A Process wraps one immutable raster and may be shared by any number of
// goroutines. ExecuteBatch runs independent requests concurrently.
package process

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/terrareach/geo"
	"github.com/katalvlaran/terrareach/reach"
	"github.com/katalvlaran/terrareach/units"
	"github.com/katalvlaran/terrareach/vectorize"
)

// Sentinel errors.
var (
	// ErrNilRaster indicates a Process built without an elevation raster.
	ErrNilRaster = errors.New("process: nil raster")
	// ErrInvalidRequest wraps request values that cannot be converted into
	// search arguments.
	ErrInvalidRequest = errors.New("process: invalid request")
)

// IsInvalidInput reports whether err was caused by the caller's input
// rather than by cancellation or a resource limit.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrNilRaster) ||
		errors.Is(err, reach.ErrInvalidInput)
}

// Request is one reachability query.
type Request struct {
	// ID tags the response and log lines; empty means Execute mints a uuid.
	ID string
	// Start is the origin in the raster's map coordinates.
	Start geo.Point
	// MaxElevation is the exclusive ceiling: cells at or above it are
	// impassable.
	MaxElevation float64
	// Speed is the travel speed, interpreted in SpeedUnit.
	Speed     float64
	SpeedUnit units.SpeedUnit
	// Time is the travel time allowance.
	Time time.Duration
	// MarkOrigin overrides the default of marking the start cell.
	MarkOrigin *bool
}

// Response is the outcome of a successful Execute.
type Response struct {
	ID     string
	Status reach.Status
	// Cell is the raster cell containing Request.Start.
	Cell reach.Cell
	// Distance is the travel distance in metres.
	Distance float64
	// CellSize is the ground length of one orthogonal step, in metres.
	CellSize float64
	// Budget is Distance expressed in grid steps.
	Budget   float64
	Accepted int
	Mask     *reach.Mask
	// Polygons are in map coordinates.
	Polygons []vectorize.Polygon
	Elapsed  time.Duration
}

// FeatureCollection returns the polygons as GeoJSON features.
func (r *Response) FeatureCollection() vectorize.FeatureCollection {
	return vectorize.NewFeatureCollection(r.Polygons)
}

// Option configures a Process.
type Option func(*Process)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(p *Process) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithConcurrency bounds the number of searches ExecuteBatch runs at once.
// Values below 1 are treated as 1.
func WithConcurrency(n int) Option {
	return func(p *Process) {
		if n < 1 {
			n = 1
		}
		p.concurrency = n
	}
}

// WithMaxAccepted caps the cells one search may accept; 0 disables the cap.
func WithMaxAccepted(n int) Option {
	return func(p *Process) {
		p.maxAccepted = n
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
