package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/osuushi/circpack"
	"github.com/osuushi/circpack/internal/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packSquare(t *testing.T) *circpack.Result {
	t.Helper()
	cfg := circpack.DefaultConfig()
	cfg.Depth = 2
	result, err := circpack.Pack(fixtures.SquarePoints(10), cfg)
	require.NoError(t, err)
	return result
}

func TestPNG(t *testing.T) {
	result := packSquare(t)
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, result, Options{Scale: 20, Padding: 5, Mesh: true}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 210, img.Bounds().Dx())
	assert.Equal(t, 210, img.Bounds().Dy())

	// The corner of the image is background, the incircle centre is not.
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
	center := result.Circles[0].Center
	x := 5 + int(center.X*20)
	y := 210 - 5 - int(center.Y*20)
	r, g, b, _ = img.At(x, y).RGBA()
	assert.NotEqual(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
}

func TestPNG_FitsSize(t *testing.T) {
	result := packSquare(t)
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, result, Options{Size: 100}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.png")
	require.NoError(t, SavePNG(path, packSquare(t), DefaultOptions()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestImgcat_MissingFile(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Imgcat(filepath.Join(t.TempDir(), "missing.png"), &buf))
	assert.Zero(t, buf.Len())
}

func TestSVG(t *testing.T) {
	result := packSquare(t)
	var buf bytes.Buffer
	require.NoError(t, SVG(&buf, result, DefaultOptions()))

	root, err := svgparser.Parse(strings.NewReader(buf.String()), false)
	require.NoError(t, err)
	assert.Len(t, root.FindAll("circle"), len(result.Circles))
	// Boundary plus one polygon per triangle
	assert.Len(t, root.FindAll("polygon"), 1+result.Mesh.Len())

	noMesh := DefaultOptions()
	noMesh.Mesh = false
	buf.Reset()
	require.NoError(t, SVG(&buf, result, noMesh))
	root, err = svgparser.Parse(strings.NewReader(buf.String()), false)
	require.NoError(t, err)
	assert.Len(t, root.FindAll("polygon"), 1)
	assert.Contains(t, root.Attributes["viewBox"], "-")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, os.ErrClosed
}

func TestSVG_WriteError(t *testing.T) {
	assert.ErrorIs(t, SVG(failingWriter{}, packSquare(t), DefaultOptions()), os.ErrClosed)
}
