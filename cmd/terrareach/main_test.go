package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/terrareach/config"
	"github.com/katalvlaran/terrareach/vectorize"
)

// A 5×5 raster of 100 m cells with a 900 m block at column 3, rows 0-3.
const testASC = `ncols 5
nrows 5
xllcorner 0
yllcorner 0
cellsize 100
0 0 0 900 0
0 0 0 900 0
0 0 0 900 0
0 0 0 900 0
0 0 0 0 0
`

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRun_Mask(t *testing.T) {
	dir := t.TempDir()
	dem := writeTemp(t, dir, "dem.asc", testASC)

	// Start in cell (1,2); 250 m of travel is a budget of 2.5 cells.
	out, err := execute(t, "run", "--raster", dem, "--x", "150", "--y", "250",
		"--max-elevation", "500", "--speed", "1", "--speed-unit", "m/s", "--time", "250s",
		"--format", "mask")
	require.NoError(t, err)
	assert.Equal(t, "###..\n###..\n###..\n###..\n###..\n", out)
}

func TestRun_GeoJSON(t *testing.T) {
	dir := t.TempDir()
	dem := writeTemp(t, dir, "dem.asc", testASC)

	out, err := execute(t, "run", "--raster", dem, "--x", "150", "--y", "250",
		"--max-elevation", "500", "--speed", "1", "--speed-unit", "m/s", "--time", "100s")
	require.NoError(t, err)

	var fc vectorize.FeatureCollection
	require.NoError(t, json.Unmarshal([]byte(out), &fc))
	require.Len(t, fc.Features, 1)
	assert.Equal(t, float64(5), fc.Features[0].Properties["cells"])
}

func TestRun_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	dem := writeTemp(t, dir, "dem.asc", testASC)
	cfg := writeTemp(t, dir, "terrareach.toml", `
[raster]
path = "`+filepath.ToSlash(dem)+`"

[search]
max_elevation = 500
speed = 1
speed_unit = "m/s"
time = "100s"
mark_origin = false

[logging]
level = "error"
`)
	out, err := execute(t, "--config", cfg, "run", "--x", "150", "--y", "250", "--format", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "status=reachable")
	assert.Contains(t, out, "cell=(1,2)")
	assert.Contains(t, out, "budget=1.000")
	assert.Contains(t, out, "accepted=5")
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	dem := writeTemp(t, dir, "dem.asc", testASC)

	_, err := execute(t, "run", "--x", "1", "--y", "1")
	assert.ErrorContains(t, err, "no raster")

	_, err = execute(t, "run", "--raster", dem, "--x", "150")
	assert.Error(t, err)

	_, err = execute(t, "run", "--raster", dem, "--x", "150", "--y", "250", "--speed-unit", "warp")
	assert.Error(t, err)

	_, err = execute(t, "run", "--raster", dem, "--x", "150", "--y", "250", "--format", "png")
	assert.ErrorContains(t, err, "unknown format")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	dem := writeTemp(t, dir, "dem.asc", testASC)
	scen := writeTemp(t, dir, "scenarios.yaml", `
scenarios:
  - name: short
    start: {x: 150, y: 250}
    max_elevation: 500
    speed: 1
    speed_unit: m/s
    time: 100s
  - start: {x: 450, y: 450}
    max_elevation: 500
    speed: 1
    speed_unit: m/s
    time: 0s
`)
	outDir := t.TempDir()

	out, err := execute(t, "--raster", dem, "batch", scen, "--out-dir", outDir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "short: "))
	assert.Contains(t, lines[0], "accepted=5")
	assert.True(t, strings.HasPrefix(lines[1], "scenario-2: "))
	assert.Contains(t, lines[1], "accepted=1")

	raw, err := os.ReadFile(filepath.Join(outDir, "short.geojson"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"FeatureCollection"`)
}

func TestLoadScenarios_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := loadScenarios(writeTemp(t, dir, "empty.yaml", "scenarios: []\n"))
	assert.ErrorContains(t, err, "no scenarios")

	_, err = loadScenarios(writeTemp(t, dir, "bad.yaml", "scenarios: [\n"))
	assert.Error(t, err)

	for _, name := range []string{"../escape", "a/b", `a\b`, ".."} {
		body := "scenarios:\n  - name: '" + name + "'\n"
		_, err = loadScenarios(writeTemp(t, dir, "names.yaml", body))
		assert.ErrorContains(t, err, "invalid name", name)
	}

	_, err = loadScenarios(writeTemp(t, dir, "dup.yaml", "scenarios:\n  - name: a\n  - name: a\n"))
	assert.ErrorContains(t, err, "duplicate name")

	// A defaulted name still collides with an explicit one.
	_, err = loadScenarios(writeTemp(t, dir, "dup2.yaml", "scenarios:\n  - name: scenario-2\n  - {}\n"))
	assert.ErrorContains(t, err, "duplicate name")

	s := Scenario{Name: "x", SpeedUnit: "furlongs"}
	_, err = s.request(config.Default().Search)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := newLogger(config.LoggingConfig{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	log, err = newLogger(config.LoggingConfig{Level: "nonsense", Format: "console"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
