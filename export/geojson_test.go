package export

import (
	"bytes"
	"testing"

	"github.com/osuushi/circpack"
	"github.com/osuushi/circpack/internal/fixtures"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoJSON(t *testing.T) {
	cfg := circpack.DefaultConfig()
	cfg.Depth = 2
	result, err := circpack.Pack(fixtures.SquarePoints(10), cfg)
	require.NoError(t, err)

	fc := GeoJSON(result)
	require.Len(t, fc.Features, 1+result.Mesh.Len()+len(result.Circles))

	boundary := fc.Features[0]
	assert.Equal(t, "boundary", boundary.Properties["type"])
	poly, ok := boundary.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 5)
	assert.True(t, poly[0].Closed())

	firstCircle := fc.Features[1+result.Mesh.Len()]
	assert.Equal(t, "circle", firstCircle.Properties["type"])
	assert.Equal(t, "incircle", firstCircle.Properties["kind"])
	assert.Equal(t, result.Circles[0].Radius, firstCircle.Properties["radius"])
	assert.Equal(t, orb.Point{result.Circles[0].Center.X, result.Circles[0].Center.Y}, firstCircle.Geometry)
}

func TestWrite(t *testing.T) {
	result, err := circpack.Pack(fixtures.EquilateralPoints(3), circpack.DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, result))

	decoded, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, decoded.Features, 1+1+len(result.Circles))
	assert.Equal(t, result.ID.String(), decoded.ExtraMembers["run"])

	var circles int
	for _, f := range decoded.Features {
		if f.Properties["type"] == "circle" {
			circles++
			assert.Greater(t, f.Properties.MustFloat64("radius"), 0.0)
		}
	}
	assert.Equal(t, len(result.Circles), circles)
}
