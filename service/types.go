// Package service exposes the reachability process over HTTP with gin.
//
// Routes:
//
//	POST /v1/reachability   compute one reachable area, GeoJSON response
//	GET  /health            liveness and raster summary
//	GET  /metrics           Prometheus exposition
package service

import (
	"github.com/katalvlaran/terrareach/geo"
	"github.com/katalvlaran/terrareach/vectorize"
)

// ServiceVersion is reported by /health.
const ServiceVersion = "0.1.0"

// ReachabilityRequest is the POST /v1/reachability body. Omitted optional
// fields fall back to the server's search defaults.
type ReachabilityRequest struct {
	// Start is the origin in the raster's map coordinates.
	Start *geo.Point `json:"start" binding:"required"`
	// MaxElevation is the exclusive elevation ceiling in metres.
	MaxElevation *float64 `json:"max_elevation,omitempty"`
	// Speed is interpreted in SpeedUnit (default knots).
	Speed     *float64 `json:"speed,omitempty"`
	SpeedUnit string   `json:"speed_unit,omitempty"`
	// Minutes is the time allowance.
	Minutes    *float64 `json:"minutes,omitempty"`
	MarkOrigin *bool    `json:"mark_origin,omitempty"`
}

// ReachabilityResponse is a GeoJSON FeatureCollection with the search
// summary as foreign members.
type ReachabilityResponse struct {
	vectorize.FeatureCollection
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Cell     [2]int  `json:"cell"`
	Budget   float64 `json:"budget"`
	Accepted int     `json:"accepted"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
