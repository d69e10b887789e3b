// Command terrareach computes the area reachable from a point on an
// elevation raster within a speed × time budget, below an elevation
// ceiling.
//
//	terrareach run --raster dem.asc --x 500250 --y 4199750 --time 20m
//	terrareach batch scenarios.yaml
//	terrareach serve --config terrareach.toml
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/terrareach/config"
	"github.com/katalvlaran/terrareach/process"
	"github.com/katalvlaran/terrareach/raster"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries state shared by the subcommands once the root has loaded
// configuration.
type app struct {
	configPath string
	rasterPath string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "terrareach",
		Short:         "Elevation-bounded reachability over raster terrain",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML config file (defaults are used when empty)")
	root.PersistentFlags().StringVar(&a.rasterPath, "raster", "", "elevation raster (.asc or .yaml); overrides [raster] path")

	root.AddCommand(newRunCmd(a), newBatchCmd(a), newServeCmd(a))
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if a.rasterPath != "" {
		cfg.Raster.Path = a.rasterPath
	}
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}

// newProcess loads the configured raster and wraps it in a Process.
func (a *app) newProcess() (*process.Process, error) {
	if a.cfg.Raster.Path == "" {
		return nil, fmt.Errorf("no raster: set --raster or [raster] path")
	}
	e, err := raster.Load(a.cfg.Raster.Path)
	if err != nil {
		return nil, err
	}
	a.log.Info("raster loaded",
		zap.String("path", a.cfg.Raster.Path),
		zap.Int("width", e.Width()),
		zap.Int("height", e.Height()),
		zap.Stringer("crs", e.CRS))

	return process.New(e,
		process.WithLogger(a.log),
		process.WithConcurrency(a.cfg.Batch.Concurrency),
		process.WithMaxAccepted(a.cfg.Search.MaxAccepted),
	), nil
}
