package triangle

import "github.com/pkg/errors"

var (
	// ErrDegenerateTriangle is returned when the vertices of a triangle are collinear or coincident,
	// in which case the circumscribed circle does not exist.
	ErrDegenerateTriangle = errors.New("degenerate triangle")

	// ErrNoTriangles is returned by the renderers when there is nothing to draw.
	ErrNoTriangles = errors.New("could not generate delaunay triangles")

	// ErrInvalidConfig is returned when the processor options are out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)
