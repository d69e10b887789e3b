package vectorize

import "encoding/json"

// FeatureCollection is a GeoJSON FeatureCollection of polygons.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON polygon feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON Polygon geometry.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates [][][2]float64 `json:"coordinates"`
}

// NewFeatureCollection wraps polys, which should already be in map
// coordinates, as GeoJSON features with properties value=1 and cells.
// A nil or empty input yields an empty, non-nil feature list.
func NewFeatureCollection(polys []Polygon) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(polys))}
	for _, p := range polys {
		coords := make([][][2]float64, 0, 1+len(p.Holes))
		coords = append(coords, ringCoords(p.Exterior))
		for _, h := range p.Holes {
			coords = append(coords, ringCoords(h))
		}
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "Polygon", Coordinates: coords},
			Properties: map[string]any{"value": 1, "cells": p.Cells},
		})
	}
	return fc
}

// Encode returns the collection as GeoJSON.
func (fc FeatureCollection) Encode() ([]byte, error) {
	return json.Marshal(fc)
}

func ringCoords(r Ring) [][2]float64 {
	out := make([][2]float64, len(r))
	for i, p := range r {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
