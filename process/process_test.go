package process_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/terrareach/geo"
	"github.com/katalvlaran/terrareach/process"
	"github.com/katalvlaran/terrareach/raster"
	"github.com/katalvlaran/terrareach/reach"
	"github.com/katalvlaran/terrareach/units"
)

// flatRaster returns a size×size zero-elevation raster of cell-metre cells
// whose top-left corner is at (0, size*cell).
func flatRaster(t *testing.T, size int, cell float64) *raster.Elevation {
	t.Helper()
	e, err := raster.New(size, size, make([]float64, size*size))
	require.NoError(t, err)
	e.Transform = geo.NewNorthUp(0, float64(size)*cell, cell, cell)
	return e
}

// center returns the map point at the middle of cell (x, y).
func center(e *raster.Elevation, x, y int) geo.Point {
	return e.Transform.CellCenter(x, y)
}

func secondsReq(p geo.Point, seconds int) process.Request {
	return process.Request{
		Start:        p,
		MaxElevation: 10,
		Speed:        1,
		SpeedUnit:    units.MetersPerSecond,
		Time:         time.Duration(seconds) * time.Second,
	}
}

func TestExecute_Plus(t *testing.T) {
	e := flatRaster(t, 5, 100)
	p := process.New(e)

	resp, err := p.Execute(context.Background(), secondsReq(center(e, 2, 2), 100))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, reach.StatusReachable, resp.Status)
	assert.Equal(t, reach.Cell{X: 2, Y: 2}, resp.Cell)
	assert.Equal(t, 100.0, resp.Distance)
	assert.Equal(t, 100.0, resp.CellSize)
	assert.Equal(t, 1.0, resp.Budget)
	assert.Equal(t, 5, resp.Accepted)
	assert.Equal(t, 5, resp.Mask.Count())
	require.Len(t, resp.Polygons, 1)
	assert.Equal(t, 5, resp.Polygons[0].Cells)
	assert.Equal(t, 50000.0, resp.Polygons[0].Area())
	assert.Greater(t, resp.Polygons[0].Exterior.SignedArea(), 0.0)
}

func TestExecute_Square(t *testing.T) {
	e := flatRaster(t, 5, 100)
	p := process.New(e)

	resp, err := p.Execute(context.Background(), secondsReq(center(e, 2, 2), 150))
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Accepted)
	require.Len(t, resp.Polygons, 1)
	assert.Equal(t, 90000.0, resp.Polygons[0].Area())

	fc := resp.FeatureCollection()
	require.Len(t, fc.Features, 1)
	assert.Equal(t, [][2]float64{{100, 400}, {100, 100}, {400, 100}, {400, 400}, {100, 400}},
		fc.Features[0].Geometry.Coordinates[0])
}

func TestExecute_Knots(t *testing.T) {
	e := flatRaster(t, 5, units.MetersPerNauticalMile)
	p := process.New(e)

	resp, err := p.Execute(context.Background(), process.Request{
		Start:        center(e, 2, 2),
		MaxElevation: 10,
		Speed:        60,
		SpeedUnit:    units.Knots,
		Time:         time.Minute,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, resp.Budget, 1e-12)
	assert.Equal(t, 5, resp.Accepted)
}

func TestExecute_MarkOriginDisabled(t *testing.T) {
	e := flatRaster(t, 5, 100)
	p := process.New(e)

	off := false
	req := secondsReq(center(e, 2, 2), 100)
	req.MarkOrigin = &off
	resp, err := p.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, resp.Mask.Get(2, 2))
	assert.Equal(t, 4, resp.Mask.Count())
	// The four arms only touch diagonally.
	assert.Len(t, resp.Polygons, 4)
}

func TestExecute_UnreachableStart(t *testing.T) {
	e, err := raster.FromRows([][]float64{{0, 0, 0}, {0, 50, 0}, {0, 0, 0}})
	require.NoError(t, err)
	p := process.New(e)

	resp, err := p.Execute(context.Background(), secondsReq(center(e, 1, 1), 10))
	require.NoError(t, err)
	assert.Equal(t, reach.StatusUnreachable, resp.Status)
	assert.Zero(t, resp.Mask.Count())
	assert.Empty(t, resp.Polygons)
	assert.Empty(t, resp.FeatureCollection().Features)
}

func TestExecute_InvalidInput(t *testing.T) {
	e := flatRaster(t, 5, 100)
	inside := center(e, 2, 2)

	cases := []struct {
		name   string
		proc   *process.Process
		mutate func(*process.Request)
		want   error
	}{
		{"NilRaster", process.New(nil), func(*process.Request) {}, process.ErrNilRaster},
		{"Outside", process.New(e), func(r *process.Request) { r.Start = geo.Point{X: -10, Y: 10} }, process.ErrInvalidRequest},
		{"NaNStart", process.New(e), func(r *process.Request) { r.Start.X = math.NaN() }, geo.ErrNonFinite},
		{"NegativeSpeed", process.New(e), func(r *process.Request) { r.Speed = -1 }, units.ErrBadSpeed},
		{"NegativeTime", process.New(e), func(r *process.Request) { r.Time = -time.Second }, units.ErrBadDuration},
		{"NaNElevation", process.New(e), func(r *process.Request) { r.MaxElevation = math.NaN() }, reach.ErrBadMaxElevation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := secondsReq(inside, 100)
			tc.mutate(&req)
			_, err := tc.proc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.True(t, process.IsInvalidInput(err))
		})
	}
}

func TestExecute_AcceptLimit(t *testing.T) {
	e := flatRaster(t, 5, 100)
	p := process.New(e, process.WithMaxAccepted(3))

	_, err := p.Execute(context.Background(), secondsReq(center(e, 2, 2), 150))
	assert.ErrorIs(t, err, reach.ErrAcceptLimit)
	assert.False(t, process.IsInvalidInput(err))
}

func TestExecute_Cancelled(t *testing.T) {
	e := flatRaster(t, 5, 100)
	p := process.New(e)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Execute(ctx, secondsReq(center(e, 2, 2), 150))
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, process.IsInvalidInput(err))
}

func TestExecute_Logs(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := flatRaster(t, 5, 100)
	p := process.New(e, process.WithLogger(zap.New(core)))

	resp, err := p.Execute(context.Background(), secondsReq(center(e, 2, 2), 100))
	require.NoError(t, err)
	_, err = p.Execute(context.Background(), secondsReq(geo.Point{X: -1, Y: -1}, 100))
	require.Error(t, err)

	ok := logs.FilterMessage("reachability computed").All()
	require.Len(t, ok, 1)
	assert.Equal(t, resp.ID, ok[0].ContextMap()["id"])
	assert.Equal(t, int64(5), ok[0].ContextMap()["accepted"])

	failed := logs.FilterMessage("reachability failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "invalid_input", failed[0].ContextMap()["kind"])
}

func TestExecute_CallerID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	e := flatRaster(t, 5, 100)
	p := process.New(e, process.WithLogger(zap.New(core)))

	req := secondsReq(center(e, 2, 2), 100)
	req.ID = "req-7"
	resp, err := p.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "req-7", resp.ID)

	bad := secondsReq(geo.Point{X: -1, Y: -1}, 100)
	bad.ID = "req-8"
	_, err = p.Execute(context.Background(), bad)
	require.Error(t, err)

	ok := logs.FilterMessage("reachability computed").All()
	require.Len(t, ok, 1)
	assert.Equal(t, "req-7", ok[0].ContextMap()["id"])
	failed := logs.FilterMessage("reachability failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "req-8", failed[0].ContextMap()["id"])
}

func TestExecuteBatch(t *testing.T) {
	e := flatRaster(t, 9, 100)
	p := process.New(e, process.WithConcurrency(3))

	var reqs []process.Request
	for _, s := range []int{0, 100, 150, 200, 300, 400} {
		reqs = append(reqs, secondsReq(center(e, 4, 4), s))
	}
	out, err := p.ExecuteBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, out, len(reqs))

	want := []int{1, 5, 9, 13, 29, 49}
	ids := map[string]bool{}
	for i, resp := range out {
		assert.Equal(t, want[i], resp.Accepted, "request %d", i)
		ids[resp.ID] = true
		if i > 0 {
			assert.True(t, out[i-1].Mask.SubsetOf(resp.Mask))
		}
	}
	assert.Len(t, ids, len(reqs))
}

func TestExecuteBatch_FirstErrorWins(t *testing.T) {
	e := flatRaster(t, 5, 100)
	p := process.New(e, process.WithConcurrency(1))

	reqs := []process.Request{
		secondsReq(center(e, 2, 2), 100),
		secondsReq(geo.Point{X: 1e9, Y: 0}, 100),
		secondsReq(center(e, 2, 2), 100),
	}
	out, err := p.ExecuteBatch(context.Background(), reqs)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, process.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "request 1")
}
