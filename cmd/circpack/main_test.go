package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFileT(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// Flags without defaults keep their values between parses, so every test
// starts from a clean slate.
func parse(t *testing.T, args []string) {
	t.Helper()
	*configPath, *pngPath, *svgPath, *geojsonPath, *boundaryPath = "", "", "", "", ""
	*showImage, *verbose, *fillGaps = false, false, false
	_, err := app.Parse(args)
	require.NoError(t, err)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	config := writeFileT(t, dir, "circpack.toml", "depth = 4\nmax_area = 2.0\n")
	args := []string{"--config", config, "--max-area", "1", "--fill-gaps"}
	parse(t, args)

	cfg, err := loadConfig(args)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Depth)
	assert.Equal(t, 1.0, cfg.MaxArea)
	assert.True(t, cfg.FillGaps)
	assert.Equal(t, 20.0, cfg.MinAngle)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	boundary := writeFileT(t, dir, "square.txt", "# square\n0 0\n4 0\n4 4\n0 4\n")
	svg := filepath.Join(dir, "out.svg")
	geojson := filepath.Join(dir, "out.geojson")
	args := []string{"--depth", "1", "--svg", svg, "--geojson", geojson, boundary}
	parse(t, args)

	var out bytes.Buffer
	require.NoError(t, run(args, &out))
	assert.Contains(t, out.String(), "in 2 triangles")
	assert.Contains(t, out.String(), "fill ratio:")
	assert.FileExists(t, svg)
	assert.FileExists(t, geojson)
}

func TestRun_SVGBoundary(t *testing.T) {
	dir := t.TempDir()
	boundary := writeFileT(t, dir, "tri.svg", `<svg><polygon points="0,0 3,0 0,3"/></svg>`)
	args := []string{"--depth", "2", boundary}
	parse(t, args)

	var out bytes.Buffer
	require.NoError(t, run(args, &out))
	assert.Contains(t, out.String(), "in 1 triangles")
}

func TestRun_DegenerateBoundary(t *testing.T) {
	dir := t.TempDir()
	boundary := writeFileT(t, dir, "line.txt", "0 0\n1 1\n2 2\n")
	args := []string{boundary}
	parse(t, args)

	var out bytes.Buffer
	assert.Error(t, run(args, &out))
	assert.Zero(t, out.Len())
}
