package process

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/terrareach/raster"
	"github.com/katalvlaran/terrareach/reach"
	"github.com/katalvlaran/terrareach/units"
	"github.com/katalvlaran/terrareach/vectorize"
)

// Process answers reachability requests against one raster.
type Process struct {
	raster      *raster.Elevation
	logger      *zap.Logger
	concurrency int
	maxAccepted int
}

// New returns a Process over r. r must not be modified afterwards.
func New(r *raster.Elevation, opts ...Option) *Process {
	p := &Process{
		raster:      r,
		logger:      zap.NewNop(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Raster returns the raster p searches.
func (p *Process) Raster() *raster.Elevation { return p.raster }

// Execute runs one request.
//
// Steps:
//  1. map Start to a cell through the raster transform;
//  2. speed × time → metres (units.Distance);
//  3. metres → grid steps using the cell size at Start;
//  4. reach.Search;
//  5. trace the mask and move the polygons to map coordinates.
//
// Errors caused by the request satisfy IsInvalidInput. An impassable start
// is not an error: the response has StatusUnreachable and no polygons.
func (p *Process) Execute(ctx context.Context, req Request) (*Response, error) {
	began := time.Now()
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	resp, err := p.execute(ctx, id, req)
	elapsed := time.Since(began)
	searchDuration.Observe(elapsed.Seconds())

	if err != nil {
		kind := errorKind(err)
		searchErrors.WithLabelValues(kind).Inc()
		p.logger.Warn("reachability failed",
			zap.String("id", id),
			zap.String("kind", kind),
			zap.Float64("start_x", req.Start.X),
			zap.Float64("start_y", req.Start.Y),
			zap.Error(err))
		return nil, err
	}

	resp.Elapsed = elapsed
	searchTotal.WithLabelValues(resp.Status.String()).Inc()
	searchAccepted.Observe(float64(resp.Accepted))
	p.logger.Info("reachability computed",
		zap.String("id", id),
		zap.String("status", resp.Status.String()),
		zap.Int("x", resp.Cell.X),
		zap.Int("y", resp.Cell.Y),
		zap.Float64("budget", resp.Budget),
		zap.Int("accepted", resp.Accepted),
		zap.Int("polygons", len(resp.Polygons)),
		zap.Duration("elapsed", elapsed))

	return resp, nil
}

func (p *Process) execute(ctx context.Context, id string, req Request) (*Response, error) {
	if p.raster == nil {
		return nil, ErrNilRaster
	}

	// 1) Start cell.
	x, y, err := p.raster.CellAt(req.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if !p.raster.InBounds(x, y) {
		return nil, invalid("start (%v, %v) is outside the raster", req.Start.X, req.Start.Y)
	}

	// 2) Travel distance.
	dist, err := units.Distance(req.Speed, req.SpeedUnit, req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	// 3) Budget in grid steps.
	cellSize := p.raster.CellSizeMeters(req.Start)
	budget, err := units.GridBudget(dist, cellSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	// 4) Search.
	opts := []reach.Option{reach.WithContext(ctx), reach.WithMaxAccepted(p.maxAccepted)}
	if req.MarkOrigin != nil {
		opts = append(opts, reach.WithMarkOrigin(*req.MarkOrigin))
	}
	res, err := reach.Search(p.raster, x, y, req.MaxElevation, budget, opts...)
	if err != nil {
		return nil, err
	}

	// 5) Polygons.
	polys := vectorize.ToMap(vectorize.Trace(res.Mask), p.raster.Transform)

	return &Response{
		ID:       id,
		Status:   res.Status,
		Cell:     reach.Cell{X: x, Y: y},
		Distance: dist,
		CellSize: cellSize,
		Budget:   budget,
		Accepted: res.Accepted,
		Mask:     res.Mask,
		Polygons: polys,
	}, nil
}

// ExecuteBatch runs reqs concurrently, at most the configured concurrency
// at a time. Responses are returned in request order. The first failure
// cancels the remaining searches and is returned.
func (p *Process) ExecuteBatch(ctx context.Context, reqs []Request) ([]*Response, error) {
	out := make([]*Response, len(reqs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			resp, err := p.Execute(gCtx, req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			out[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.Debug("batch complete", zap.Int("requests", len(reqs)))
	return out, nil
}
