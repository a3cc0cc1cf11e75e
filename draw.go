package triangle

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Wireframe modes.
const (
	WithoutWireframe = iota
	WithWireframe
	WireframeOnly
)

// Drawer holds the rendering options of the triangulated image.
type Drawer struct {
	// Wireframe selects how the triangles are painted: filled, filled and stroked, or stroked only.
	Wireframe int
	// StrokeWidth is the width of the triangle outlines.
	StrokeWidth float64
	// StrokeColor is the outline color. A nil color uses the triangle color in
	// WireframeOnly mode and a translucent black otherwise.
	StrokeColor color.Color
	// BackgroundColor fills the canvas before the triangles are drawn. A nil color leaves it transparent.
	BackgroundColor color.Color
	// Noise applies a grain filter of the given amount over the rendered image.
	Noise int
}

// NewDrawer returns a drawer which fills the triangles without outlines.
func NewDrawer() *Drawer {
	return &Drawer{
		Wireframe:   WithoutWireframe,
		StrokeWidth: 1,
	}
}

// Draw paints the triangles over a canvas of the source image size. Every triangle
// takes the color of the source pixel found under its centroid.
func (d *Drawer) Draw(src *image.NRGBA, triangles []Triangle) (image.Image, error) {
	if len(triangles) == 0 {
		return nil, ErrNoTriangles
	}

	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	ctx := gg.NewContext(width, height)
	if d.BackgroundColor != nil {
		ctx.DrawRectangle(0, 0, float64(width), float64(height))
		ctx.SetColor(d.BackgroundColor)
		ctx.Fill()
	}

	for _, t := range triangles {
		p0, p1, p2 := t.Nodes[0], t.Nodes[1], t.Nodes[2]

		ctx.Push()
		ctx.MoveTo(p0.X, p0.Y)
		ctx.LineTo(p1.X, p1.Y)
		ctx.LineTo(p2.X, p2.Y)
		ctx.LineTo(p0.X, p0.Y)
		ctx.ClosePath()

		fill := colorAt(src, t.Centroid())

		switch d.Wireframe {
		case WithoutWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.Fill()
		case WithWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.SetStrokeStyle(gg.NewSolidPattern(d.strokeColor(color.RGBA{R: 0, G: 0, B: 0, A: 20})))
			ctx.SetLineWidth(d.StrokeWidth)
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(d.strokeColor(fill)))
			ctx.SetLineWidth(d.StrokeWidth)
			ctx.Stroke()
		}
		ctx.Pop()
	}

	img := ctx.Image()
	// Apply a noise on the final image. This will give it a more artistic look.
	if d.Noise > 0 {
		return Noise(d.Noise, img), nil
	}
	return img, nil
}

func (d *Drawer) strokeColor(fallback color.Color) color.Color {
	if d.StrokeColor != nil {
		return d.StrokeColor
	}
	return fallback
}

// colorAt returns the opaque color of the source pixel under p, clamping p into the image bounds.
func colorAt(src *image.NRGBA, p Point) color.NRGBA {
	b := src.Bounds()
	x := Clamp(int(p.X), 0, b.Dx()-1)
	y := Clamp(int(p.Y), 0, b.Dy()-1)

	i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
	return color.NRGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2], A: 255}
}
