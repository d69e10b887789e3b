package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/terrareach/config"
	"github.com/katalvlaran/terrareach/geo"
	"github.com/katalvlaran/terrareach/process"
	"github.com/katalvlaran/terrareach/reach"
	"github.com/katalvlaran/terrareach/units"
)

// searchFlags are the per-request overrides shared by run.
type searchFlags struct {
	x, y         float64
	maxElevation float64
	speed        float64
	speedUnit    string
	time         time.Duration
	markOrigin   bool
	format       string
}

func newRunCmd(a *app) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute one reachable area and print it",
		Long: `Compute the cells reachable from (--x, --y), given in the raster's map
coordinates, and print them as GeoJSON (default), an ASCII mask, or a
one-line summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := f.request(cmd, a.cfg.Search)
			if err != nil {
				return err
			}
			proc, err := a.newProcess()
			if err != nil {
				return err
			}
			resp, err := proc.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}
			return writeResponse(cmd.OutOrStdout(), f.format, resp)
		},
	}
	fl := cmd.Flags()
	fl.Float64Var(&f.x, "x", 0, "start X in map units")
	fl.Float64Var(&f.y, "y", 0, "start Y in map units")
	fl.Float64Var(&f.maxElevation, "max-elevation", 0, "exclusive elevation ceiling in metres")
	fl.Float64Var(&f.speed, "speed", 0, "travel speed")
	fl.StringVar(&f.speedUnit, "speed-unit", "", "speed unit: kn, km/h, m/s, mph")
	fl.DurationVar(&f.time, "time", 0, "time allowance, e.g. 20m")
	fl.BoolVar(&f.markOrigin, "mark-origin", true, "include the start cell in the mask")
	fl.StringVar(&f.format, "format", "geojson", "output: geojson, mask or summary")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}

// request merges the flags the user set over the [search] defaults.
func (f *searchFlags) request(cmd *cobra.Command, d config.SearchConfig) (process.Request, error) {
	fl := cmd.Flags()
	req := process.Request{
		Start:        geo.Point{X: f.x, Y: f.y},
		MaxElevation: d.MaxElevation,
		Speed:        d.Speed,
		Time:         d.Time,
	}
	mark := d.MarkOrigin
	unit := d.SpeedUnit
	if fl.Changed("max-elevation") {
		req.MaxElevation = f.maxElevation
	}
	if fl.Changed("speed") {
		req.Speed = f.speed
	}
	if fl.Changed("time") {
		req.Time = f.time
	}
	if fl.Changed("mark-origin") {
		mark = f.markOrigin
	}
	if fl.Changed("speed-unit") {
		unit = f.speedUnit
	}
	req.MarkOrigin = &mark

	u, err := units.ParseSpeedUnit(unit)
	if err != nil {
		return req, err
	}
	req.SpeedUnit = u
	return req, nil
}

func writeResponse(w io.Writer, format string, resp *process.Response) error {
	switch format {
	case "geojson":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.FeatureCollection())
	case "mask":
		_, err := io.WriteString(w, renderMask(resp.Mask))
		return err
	case "summary":
		_, err := fmt.Fprintln(w, summary(resp))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

func summary(resp *process.Response) string {
	return fmt.Sprintf("%s status=%s cell=(%d,%d) budget=%.3f accepted=%d polygons=%d",
		resp.ID, resp.Status, resp.Cell.X, resp.Cell.Y, resp.Budget, resp.Accepted, len(resp.Polygons))
}

// renderMask draws set cells as '#' and clear cells as '.', north first.
func renderMask(m *reach.Mask) string {
	var sb strings.Builder
	sb.Grow((m.Width() + 1) * m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.Get(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
