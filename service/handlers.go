package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/terrareach/config"
	"github.com/katalvlaran/terrareach/process"
	"github.com/katalvlaran/terrareach/reach"
	"github.com/katalvlaran/terrareach/units"
)

// Handlers serves reachability requests against one Process.
type Handlers struct {
	proc     *process.Process
	defaults config.SearchConfig
	logger   *zap.Logger
}

// NewHandlers returns handlers that fill omitted request fields from
// defaults. A nil logger disables logging.
func NewHandlers(proc *process.Process, defaults config.SearchConfig, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{proc: proc, defaults: defaults, logger: logger}
}

// HandleReachability handles POST /v1/reachability.
//
// Response:
//
//	200 OK: ReachabilityResponse (empty features when the start is impassable)
//	400 Bad Request: malformed body or invalid search input
//	422 Unprocessable Entity: accepted cell limit exceeded
//	499/504: request cancelled or timed out
//	500 Internal Server Error: anything else
func (h *Handlers) HandleReachability(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With(zap.String("request_id", requestID))

	var body ReachabilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error(), Code: "INVALID_REQUEST"})
		return
	}
	req, err := h.toRequest(body)
	if err != nil {
		logger.Warn("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "INVALID_INPUT"})
		return
	}
	req.ID = requestID

	resp, err := h.proc.Execute(c.Request.Context(), req)
	if err != nil {
		status, code := classify(err)
		logger.Warn("reachability failed", zap.Int("http_status", status), zap.Error(err))
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}

	logger.Info("reachability served",
		zap.String("id", resp.ID),
		zap.String("status", resp.Status.String()),
		zap.Int("accepted", resp.Accepted))

	c.JSON(http.StatusOK, ReachabilityResponse{
		FeatureCollection: resp.FeatureCollection(),
		ID:                resp.ID,
		Status:            resp.Status.String(),
		Cell:              [2]int{resp.Cell.X, resp.Cell.Y},
		Budget:            resp.Budget,
		Accepted:          resp.Accepted,
	})
}

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	r := h.proc.Raster()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "no raster", Version: ServiceVersion})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: ServiceVersion,
		Width:   r.Width(),
		Height:  r.Height(),
	})
}

// toRequest merges body over the configured defaults.
func (h *Handlers) toRequest(body ReachabilityRequest) (process.Request, error) {
	d := h.defaults
	req := process.Request{
		Start:        *body.Start,
		MaxElevation: d.MaxElevation,
		Speed:        d.Speed,
		Time:         d.Time,
		MarkOrigin:   &d.MarkOrigin,
	}
	if body.MaxElevation != nil {
		req.MaxElevation = *body.MaxElevation
	}
	if body.Speed != nil {
		req.Speed = *body.Speed
	}
	if body.MarkOrigin != nil {
		req.MarkOrigin = body.MarkOrigin
	}

	unit := d.SpeedUnit
	if body.SpeedUnit != "" {
		unit = body.SpeedUnit
	}
	u, err := units.ParseSpeedUnit(unit)
	if err != nil {
		return req, err
	}
	req.SpeedUnit = u

	if body.Minutes != nil {
		m := *body.Minutes
		if math.IsNaN(m) || m < 0 || m > math.MaxInt64/float64(time.Minute) {
			return req, fmt.Errorf("%w: got %v minutes", units.ErrBadDuration, m)
		}
		req.Time = time.Duration(m * float64(time.Minute))
	}
	return req, nil
}

// classify maps a process error to an HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case process.IsInvalidInput(err):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return 499, "CANCELLED"
	case errors.Is(err, reach.ErrAcceptLimit):
		return http.StatusUnprocessableEntity, "ACCEPT_LIMIT"
	}
	return http.StatusInternalServerError, "INTERNAL"
}

// getOrCreateRequestID gets or creates a request ID.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
