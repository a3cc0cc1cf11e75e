package triangle

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tiling(width, height int) []Triangle {
	return (&Delaunay{}).Init(width, height).GetTriangles()
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestDrawEmpty(t *testing.T) {
	d := NewDrawer()
	src := squareImage(10, 10)

	_, err := d.Draw(src, nil)
	assert.ErrorIs(t, err, ErrNoTriangles)

	var buf bytes.Buffer
	assert.ErrorIs(t, d.DrawSVG(&buf, src, nil), ErrNoTriangles)
	assert.Zero(t, buf.Len())
}

func TestDrawFill(t *testing.T) {
	src := uniformImage(20, 20, color.NRGBA{R: 255, A: 255})

	img, err := NewDrawer().Draw(src, tiling(20, 20))
	require.NoError(t, err)

	assert.Equal(t, src.Bounds(), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgbaAt(img, 4, 15))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgbaAt(img, 15, 4))
}

func TestDrawWireframeOnly(t *testing.T) {
	src := uniformImage(20, 20, color.NRGBA{R: 255, A: 255})
	d := NewDrawer()
	d.Wireframe = WireframeOnly
	d.BackgroundColor = color.NRGBA{B: 255, A: 255}

	img, err := d.Draw(src, tiling(20, 20))
	require.NoError(t, err)

	// Far from every edge only the background shows.
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, nrgbaAt(img, 15, 4))
}

func TestDrawNoise(t *testing.T) {
	src := noiseImage(16, 16, 8)
	d := NewDrawer()
	d.Noise = 10

	a, err := d.Draw(src, tiling(16, 16))
	require.NoError(t, err)
	b, err := d.Draw(src, tiling(16, 16))
	require.NoError(t, err)

	require.IsType(t, &image.NRGBA{}, a)
	assert.Equal(t, src.Bounds(), a.Bounds())
	assert.Equal(t, a, b)
}

func TestNoise(t *testing.T) {
	src := uniformImage(8, 8, color.NRGBA{R: 100, G: 100, B: 100, A: 200})
	res := Noise(20, src)

	require.Equal(t, src.Bounds(), res.Bounds())
	changed := false
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := res.NRGBAAt(x, y)
			assert.Equal(t, uint8(200), c.A)
			// The same offset is applied on every channel.
			assert.Equal(t, c.R, c.G)
			assert.Equal(t, c.R, c.B)
			if c.R != 100 {
				changed = true
			}
		}
	}
	assert.True(t, changed)
}

func TestColorAtClampsToBounds(t *testing.T) {
	src := uniformImage(4, 4, color.NRGBA{G: 255, A: 255})
	src.SetNRGBA(3, 3, color.NRGBA{R: 9, A: 10})

	assert.Equal(t, color.NRGBA{R: 9, A: 255}, colorAt(src, Point{4, 4}))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, colorAt(src, Point{-1, 0}))
}

func TestDrawSVG(t *testing.T) {
	src := uniformImage(20, 10, color.NRGBA{R: 255, A: 255})
	triangles := tiling(20, 10)

	t.Run("fill", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDrawer().DrawSVG(&buf, src, triangles))

		out := buf.String()
		assert.Contains(t, out, "<svg")
		assert.Equal(t, len(triangles), strings.Count(out, "<polygon"))
		assert.Equal(t, len(triangles), strings.Count(out, `fill="#ff0000"`))
		assert.NotContains(t, out, "<rect")
		assert.NotContains(t, out, "stroke")
		assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	})

	t.Run("wireframe with background", func(t *testing.T) {
		d := NewDrawer()
		d.Wireframe = WireframeOnly
		d.StrokeColor = color.NRGBA{G: 255, A: 255}
		d.BackgroundColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

		var buf bytes.Buffer
		require.NoError(t, d.DrawSVG(&buf, src, triangles))

		out := buf.String()
		assert.Equal(t, 1, strings.Count(out, "<rect"))
		assert.Contains(t, out, `fill="#ffffff"`)
		assert.Equal(t, len(triangles),
			strings.Count(out, `fill="none" stroke="#00ff00" stroke-opacity="1.000"`))
	})
}

func TestPolygonStyle(t *testing.T) {
	fill := color.NRGBA{R: 255, A: 255}

	d := NewDrawer()
	assert.Equal(t, `fill="#ff0000"`, d.polygonStyle(fill))

	d.Wireframe = WithWireframe
	assert.Equal(t,
		`fill="#ff0000" stroke="#000000" stroke-opacity="0.078" stroke-width="1" stroke-linejoin="round"`,
		d.polygonStyle(fill))

	d.Wireframe = WireframeOnly
	d.StrokeWidth = 0.5
	assert.Equal(t,
		`fill="none" stroke="#ff0000" stroke-opacity="1.000" stroke-width="0.5" stroke-linejoin="round"`,
		d.polygonStyle(fill))
}
