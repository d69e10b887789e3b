package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/terrareach/geo"
)

// maxPrealloc caps the sample slice capacity taken on trust from the header.
const maxPrealloc = 1 << 20

// ascHeader collects the ESRI ASCII grid header keys.
type ascHeader struct {
	ncols, nrows int
	xll, yll     float64
	cellSize     float64
	center       bool
	nodata       *float64
	seen         map[string]bool
}

// ReadASCIIGrid parses an ESRI ASCII grid. Header keys are
// case-insensitive; samples may wrap across lines freely.
func ReadASCIIGrid(r io.Reader) (*Elevation, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	h := ascHeader{seen: make(map[string]bool, 7)}

	// 1) Header: key/value pairs until the first non-key token.
	var first string
	for sc.Scan() {
		key := strings.ToLower(sc.Text())
		if !isASCKey(key) {
			first = sc.Text()
			break
		}
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: %s has no value", ErrBadHeader, key)
		}
		if err := h.set(key, sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: read ascii grid: %w", err)
	}
	if err := h.validate(); err != nil {
		return nil, err
	}

	// 2) Samples, north row first.
	total := h.ncols * h.nrows
	values := make([]float64, 0, min(total, maxPrealloc))
	tok := first
	for tok != "" {
		if len(values) == total {
			return nil, fmt.Errorf("%w: more than %d samples", ErrNonRectangular, total)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: sample %d: %q", ErrBadValue, len(values), tok)
		}
		values = append(values, v)
		tok = ""
		if sc.Scan() {
			tok = sc.Text()
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("raster: read ascii grid: %w", err)
	}
	if len(values) != total {
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrNonRectangular, len(values), total)
	}

	// 3) Georeference: xll/yll name the lower-left corner (or center).
	left, bottom := h.xll, h.yll
	if h.center {
		left -= h.cellSize / 2
		bottom -= h.cellSize / 2
	}
	top := bottom + float64(h.nrows)*h.cellSize

	return &Elevation{
		width:     h.ncols,
		height:    h.nrows,
		values:    values,
		Transform: geo.NewNorthUp(left, top, h.cellSize, h.cellSize),
		NoData:    h.nodata,
	}, nil
}

func isASCKey(k string) bool {
	switch k {
	case "ncols", "nrows", "xllcorner", "yllcorner", "xllcenter", "yllcenter", "cellsize", "nodata_value":
		return true
	}
	return false
}

func (h *ascHeader) set(key, raw string) error {
	if h.seen[key] {
		return fmt.Errorf("%w: duplicate %s", ErrBadHeader, key)
	}
	h.seen[key] = true

	switch key {
	case "ncols", "nrows":
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s = %q", ErrBadHeader, key, raw)
		}
		if key == "ncols" {
			h.ncols = n
		} else {
			h.nrows = n
		}
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: %s = %q", ErrBadHeader, key, raw)
	}
	switch key {
	case "xllcorner":
		h.xll = v
	case "yllcorner":
		h.yll = v
	case "xllcenter":
		h.xll, h.center = v, true
	case "yllcenter":
		h.yll, h.center = v, true
	case "cellsize":
		h.cellSize = v
	case "nodata_value":
		h.nodata = &v
	}
	return nil
}

func (h *ascHeader) validate() error {
	for _, k := range []string{"ncols", "nrows", "cellsize"} {
		if !h.seen[k] {
			return fmt.Errorf("%w: missing %s", ErrBadHeader, k)
		}
	}
	if !(h.seen["xllcorner"] || h.seen["xllcenter"]) || !(h.seen["yllcorner"] || h.seen["yllcenter"]) {
		return fmt.Errorf("%w: missing lower-left origin", ErrBadHeader)
	}
	if h.seen["xllcorner"] && h.seen["yllcenter"] || h.seen["xllcenter"] && h.seen["yllcorner"] {
		return fmt.Errorf("%w: mixed corner and center origin", ErrBadHeader)
	}
	if h.ncols > math.MaxInt/h.nrows {
		return fmt.Errorf("%w: %d×%d cells overflow", ErrBadHeader, h.ncols, h.nrows)
	}
	if !(h.cellSize > 0) {
		return fmt.Errorf("%w: cellsize must be positive", ErrBadHeader)
	}
	return nil
}
