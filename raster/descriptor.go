package raster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/terrareach/geo"
)

// Descriptor is the YAML sidecar that georeferences a CSV elevation file.
//
//	data: dem.csv        # relative to the descriptor
//	origin_x: 500000     # map X of the top-left corner
//	origin_y: 4200000    # map Y of the top-left corner
//	cell_size: 30
//	crs: projected       # or geographic
//	nodata: -9999
type Descriptor struct {
	Data     string   `yaml:"data"`
	OriginX  float64  `yaml:"origin_x"`
	OriginY  float64  `yaml:"origin_y"`
	CellSize float64  `yaml:"cell_size"`
	CRS      string   `yaml:"crs"`
	NoData   *float64 `yaml:"nodata"`
}

// LoadDescriptor reads a YAML descriptor and the CSV file it names.
func LoadDescriptor(path string) (*Elevation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("raster: read descriptor %s: %w", path, err)
	}
	var d Descriptor
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: parse descriptor: %v", ErrBadHeader, err)
	}
	if d.Data == "" {
		return nil, fmt.Errorf("%w: descriptor has no data file", ErrBadHeader)
	}
	if !(d.CellSize > 0) {
		return nil, fmt.Errorf("%w: cell_size must be positive", ErrBadHeader)
	}
	kind, err := geo.ParseCRSKind(d.CRS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	dataPath := d.Data
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(filepath.Dir(path), dataPath)
	}
	f, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("raster: open data %s: %w", dataPath, err)
	}
	defer f.Close()

	e, err := ReadCSV(f)
	if err != nil {
		return nil, err
	}
	e.Transform = geo.NewNorthUp(d.OriginX, d.OriginY, d.CellSize, d.CellSize)
	e.CRS = kind
	e.NoData = d.NoData

	return e, nil
}

// ReadCSV reads comma-separated samples, one row per line, north first.
// Blank lines and lines starting with '#' are skipped.
func ReadCSV(r io.Reader) (*Elevation, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var rows [][]float64
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if len(text) == 0 || text[0] == '#' {
			continue
		}
		fields := strings.Split(text, ",")
		row := make([]float64, len(fields))
		for i, tok := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrBadValue, line, i+1, tok)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: read csv: %w", err)
	}

	return FromRows(rows)
}
