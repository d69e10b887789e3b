package raster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a raster, choosing the reader by file extension.
func Load(path string) (*Elevation, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".asc":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("raster: open %s: %w", path, err)
		}
		defer f.Close()
		return ReadASCIIGrid(f)
	case ".yaml", ".yml":
		return LoadDescriptor(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}
