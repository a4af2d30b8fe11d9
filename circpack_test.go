package circpack

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kr/pretty"
	"github.com/osuushi/circpack/internal/fixtures"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack_Square(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Depth = 1
	result, err := Pack(fixtures.SquarePoints(10), cfg)
	require.NoError(t, err)

	require.Equal(t, 2, result.Mesh.Len())
	require.Len(t, result.Circles, 8)
	stats := result.Stats()
	assert.Equal(t, []int{2, 6}, stats.PerDepth)
	assert.Less(t, stats.PackedArea, 100.0)
	assert.InDelta(t, 100, stats.PolygonArea, 1e-9)

	// Both triangles are right isosceles with legs of 10
	r0 := 10 / (2 + math.Sqrt2)
	assert.InDelta(t, r0, result.Circles[0].Radius, 1e-9)
	assert.InDelta(t, r0, result.Circles[4].Radius, 1e-9)
}

func TestPack_EquilateralTriangle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Depth = 3
	result, err := Pack(fixtures.EquilateralPoints(1), cfg)
	require.NoError(t, err)
	require.Len(t, result.Circles, 10)

	r0 := math.Sqrt(3) / 6
	assert.InDelta(t, r0, result.Circles[0].Radius, 1e-12)
	assert.InDelta(t, r0/3, result.Circles[1].Radius, 1e-12)
	assert.InDelta(t, r0/9, result.Circles[2].Radius, 1e-12)
	assert.Equal(t, []int{1, 3, 3, 3}, result.Stats().PerDepth)
}

func TestPack_Degenerate(t *testing.T) {
	collinear := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	result, err := Pack(collinear, DefaultConfig())
	assert.Nil(t, result)
	var geomErr *DegenerateGeometryError
	assert.True(t, errors.As(err, &geomErr), "unexpected error %v", err)
}

func TestPack_InvalidQuality(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinAngle = 45
	result, err := Pack(fixtures.SquarePoints(1), cfg)
	assert.Nil(t, result)
	var triErr *TriangulationError
	require.True(t, errors.As(err, &triErr), "unexpected error %v", err)
	assert.Equal(t, 45.0, triErr.Quality.MinAngle)
}

func TestPack_Properties(t *testing.T) {
	for _, name := range fixtures.Names() {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Depth = 3
			cfg.MinAngle = 25
			cfg.MaxArea = 4
			cfg.FillGaps = true
			points := fixtures.Points(name)
			result, err := Pack(points, cfg)
			require.NoError(t, err)
			require.NoError(t, result.Mesh.Validate())
			assertPacking(t, result)
		})
	}

	t.Run("star", func(t *testing.T) {
		result, err := Pack(fixtures.SimpleStarPoints(), DefaultConfig())
		require.NoError(t, err)
		assertPacking(t, result)
	})
}

func TestPack_SharpCorners(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		t.Run(fmt.Sprintf("star %d", seed), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Depth = 6
			cfg.MaxArea = 3
			result, err := Pack(fixtures.RandomStarPoints(seed, 6), cfg)
			require.NoError(t, err)
			require.NoError(t, result.Mesh.Validate())
			assertPacking(t, result)
		})
	}
}

func TestPack_Deterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxArea = 2
	cfg.FillGaps = true
	first, err := Pack(fixtures.Points("slope"), cfg)
	require.NoError(t, err)
	second, err := Pack(fixtures.Points("slope"), cfg)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	if diff := pretty.Diff(first.Circles, second.Circles); len(diff) > 0 {
		t.Errorf("packings differ:\n%s", pretty.Sprint(diff))
	}
}

func TestPack_WorkersDoNotChangeOutput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxArea = 1
	cfg.Workers = 1
	serial, err := Pack(fixtures.Points("comb"), cfg)
	require.NoError(t, err)

	cfg.Workers = 8
	parallel, err := Pack(fixtures.Points("comb"), cfg)
	require.NoError(t, err)

	assert.Equal(t, serial.Circles, parallel.Circles)
	for i, c := range serial.Circles {
		if i > 0 {
			assert.GreaterOrEqual(t, c.Triangle, serial.Circles[i-1].Triangle)
		}
	}
}

func TestPackContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := PackContext(ctx, fixtures.SquarePoints(1), DefaultConfig())
	assert.Nil(t, result)
	assert.Equal(t, context.Canceled, errors.Cause(err))
}

func TestPack_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)
	SetLogger(logger)
	defer SetLogger(nil)

	result, err := Pack(fixtures.SquarePoints(3), DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "packing done")
	assert.Contains(t, buf.String(), "run="+result.ID.String())
	assert.Contains(t, buf.String(), "mesh ready")
}

func TestStats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Depth = 2
	result, err := Pack(fixtures.SquarePoints(4), cfg)
	require.NoError(t, err)
	stats := result.Stats()

	assert.Equal(t, len(result.Circles), stats.Count)
	assert.Equal(t, 2, stats.Triangles)
	assert.InDelta(t, stats.PackedArea/16, stats.FillRatio, 1e-12)
	assert.Less(t, stats.FillRatio, 1.0)
	assert.LessOrEqual(t, stats.MinRadius, stats.MedianRadius)
	assert.LessOrEqual(t, stats.MedianRadius, stats.MaxRadius)
	assert.Greater(t, stats.MeanRadius, stats.MinRadius)
	assert.InDelta(t, result.Circles[0].Radius, stats.MaxRadius, 1e-12)

	total := 0
	for _, n := range stats.PerDepth {
		total += n
	}
	assert.Equal(t, stats.Count, total)
	assert.Contains(t, stats.String(), "in 2 triangles")

	empty := (&Result{Polygon: result.Polygon, Mesh: result.Mesh}).Stats()
	assert.Equal(t, 0, empty.Count)
	assert.Zero(t, empty.FillRatio)
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, 10, cfg.Depth)
		assert.Equal(t, 20.0, cfg.MinAngle)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("invalid", func(t *testing.T) {
		for _, cfg := range []Config{
			{Depth: -1},
			{MinRadius: -1},
			{MinRadius: math.NaN()},
			{MinAngle: 50},
			{MaxArea: -3},
		} {
			assert.Error(t, cfg.Validate(), "%+v", cfg)
		}
	})

	t.Run("load", func(t *testing.T) {
		path := writeConfig(t, `
depth = 4
max_area = 0.5
fill_gaps = true
workers = 3
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		expected := DefaultConfig()
		expected.Depth = 4
		expected.MaxArea = 0.5
		expected.FillGaps = true
		expected.Workers = 3
		assert.Equal(t, expected, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "depht = 4\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys depht")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "depth = [\n"))
		assert.Error(t, err)
	})
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circpack.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// No overlaps, everything inside the polygon, less area than the polygon.
func assertPacking(t *testing.T, result *Result) {
	t.Helper()
	poly := result.Polygon
	eps := 1e-9 * math.Max(poly.Bounds().Size().X, poly.Bounds().Size().Y)
	require.NotEmpty(t, result.Circles)

	for i, c := range result.Circles {
		require.True(t, poly.ContainsPoint(c.Center), "circle %d (%v) outside the polygon", i, c)
		for _, e := range poly.Edges() {
			require.GreaterOrEqual(t, e.Distance(c.Center), c.Radius-eps, "circle %d crosses %v", i, e)
		}
		tri := result.Mesh.Triangle(c.Triangle)
		require.True(t, tri.ContainsPoint(c.Center), "circle %d (%v) outside triangle %d", i, c, c.Triangle)
		for _, e := range tri.Edges() {
			require.GreaterOrEqual(t, e.Distance(c.Center), c.Radius-eps, "circle %d leaves triangle %d", i, c.Triangle)
		}
	}
	for i, c := range result.Circles {
		for j := i + 1; j < len(result.Circles); j++ {
			other := result.Circles[j]
			if !assert.False(t, c.Overlaps(other.Circle, eps), "circles %d and %d overlap", i, j) {
				return
			}
		}
	}
	assert.Less(t, result.Stats().PackedArea, poly.Area())
}
