package triangle

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo/float"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// DrawSVG writes the triangles as an SVG document, one polygon per triangle.
// The wireframe options follow the same rules as Draw. Noise is not applied to vector output.
func (d *Drawer) DrawSVG(w io.Writer, src *image.NRGBA, triangles []Triangle) error {
	if len(triangles) == 0 {
		return ErrNoTriangles
	}
	width, height := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	bw := bufio.NewWriter(w)

	canvas := svg.New(bw)
	canvas.Start(width, height)
	if d.BackgroundColor != nil {
		canvas.Rect(0, 0, width, height, fmt.Sprintf(`fill="%s"`, hexColor(d.BackgroundColor)))
	}

	xs, ys := make([]float64, 3), make([]float64, 3)
	for _, t := range triangles {
		for i, n := range t.Nodes {
			xs[i], ys[i] = n.X, n.Y
		}
		canvas.Polygon(xs, ys, d.polygonStyle(colorAt(src, t.Centroid())))
	}
	canvas.End()

	return errors.Wrap(bw.Flush(), "writing svg")
}

// polygonStyle returns the presentation attributes of a triangle filled with fill.
func (d *Drawer) polygonStyle(fill color.Color) string {
	switch d.Wireframe {
	case WithWireframe:
		stroke := d.strokeColor(color.NRGBA{A: 20})
		return fmt.Sprintf(`fill="%s" stroke="%s" stroke-opacity="%.3f" stroke-width="%g" stroke-linejoin="round"`,
			hexColor(fill), hexColor(stroke), opacity(stroke), d.StrokeWidth)
	case WireframeOnly:
		stroke := d.strokeColor(fill)
		return fmt.Sprintf(`fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%g" stroke-linejoin="round"`,
			hexColor(stroke), opacity(stroke), d.StrokeWidth)
	default:
		return fmt.Sprintf(`fill="%s"`, hexColor(fill))
	}
}

// hexColor returns the #rrggbb form of the color, ignoring its alpha.
func hexColor(c color.Color) string {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	nc.A = 255
	cf, _ := colorful.MakeColor(nc)
	return cf.Hex()
}

func opacity(c color.Color) float64 {
	return float64(color.NRGBAModel.Convert(c).(color.NRGBA).A) / 255
}
