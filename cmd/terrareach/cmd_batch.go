package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/terrareach/config"
	"github.com/katalvlaran/terrareach/geo"
	"github.com/katalvlaran/terrareach/process"
	"github.com/katalvlaran/terrareach/units"
)

// Scenario is one entry of a batch file. Omitted fields use [search].
type Scenario struct {
	Name         string         `yaml:"name"`
	Start        geo.Point      `yaml:"start"`
	MaxElevation *float64       `yaml:"max_elevation"`
	Speed        *float64       `yaml:"speed"`
	SpeedUnit    string         `yaml:"speed_unit"`
	Time         *time.Duration `yaml:"time"`
	MarkOrigin   *bool          `yaml:"mark_origin"`
}

type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// loadScenarios reads a YAML batch file. Names become file names under
// --out-dir, so they must be unique and free of path separators.
func loadScenarios(path string) ([]Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios %s: %w", path, err)
	}
	var file scenarioFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("%s: no scenarios", path)
	}
	seen := make(map[string]bool, len(file.Scenarios))
	for i := range file.Scenarios {
		name := file.Scenarios[i].Name
		if name == "" {
			name = fmt.Sprintf("scenario-%d", i+1)
			file.Scenarios[i].Name = name
		}
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("scenario %d: invalid name %q", i+1, name)
		}
		if seen[name] {
			return nil, fmt.Errorf("scenario %d: duplicate name %q", i+1, name)
		}
		seen[name] = true
	}
	return file.Scenarios, nil
}

// request merges s over the [search] defaults.
func (s Scenario) request(d config.SearchConfig) (process.Request, error) {
	req := process.Request{
		Start:        s.Start,
		MaxElevation: d.MaxElevation,
		Speed:        d.Speed,
		Time:         d.Time,
		MarkOrigin:   &d.MarkOrigin,
	}
	if s.MaxElevation != nil {
		req.MaxElevation = *s.MaxElevation
	}
	if s.Speed != nil {
		req.Speed = *s.Speed
	}
	if s.Time != nil {
		req.Time = *s.Time
	}
	if s.MarkOrigin != nil {
		req.MarkOrigin = s.MarkOrigin
	}
	unit := d.SpeedUnit
	if s.SpeedUnit != "" {
		unit = s.SpeedUnit
	}
	u, err := units.ParseSpeedUnit(unit)
	if err != nil {
		return req, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	req.SpeedUnit = u
	return req, nil
}

func newBatchCmd(a *app) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "batch <scenarios.yaml>",
		Short: "Run many searches concurrently on one raster",
		Long: `Run every scenario in a YAML file against the configured raster,
[batch] concurrency at a time. A summary line per scenario is printed;
with --out-dir each result is also written as <name>.geojson.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenarios, err := loadScenarios(args[0])
			if err != nil {
				return err
			}
			reqs := make([]process.Request, len(scenarios))
			for i, s := range scenarios {
				if reqs[i], err = s.request(a.cfg.Search); err != nil {
					return err
				}
			}

			proc, err := a.newProcess()
			if err != nil {
				return err
			}
			out, err := proc.ExecuteBatch(cmd.Context(), reqs)
			if err != nil {
				return err
			}

			for i, resp := range out {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", scenarios[i].Name, summary(resp))
				if outDir == "" {
					continue
				}
				raw, err := json.Marshal(resp.FeatureCollection())
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, scenarios[i].Name+".geojson")
				if err := os.WriteFile(path, raw, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
			}
			a.log.Info("batch finished", zap.Int("scenarios", len(out)))
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory for per-scenario GeoJSON files")
	return cmd
}
