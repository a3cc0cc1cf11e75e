package triangle

import (
	"math"

	"github.com/pkg/errors"
)

// epsilon is the tolerance used when comparing two point coordinates.
const epsilon = 0.0001

// degenerateLimit is the smallest accepted absolute value of the orientation determinant.
// Below this the triangle vertices are considered collinear.
const degenerateLimit = 1e-9

// Point defines a struct having as components the point X and Y coordinate position.
type Point struct {
	X, Y float64
}

// Equal checks if two points are approximately equals.
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) < epsilon && math.Abs(p.Y-q.Y) < epsilon
}

// distSq returns the squared euclidean distance between two points.
func (p Point) distSq(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// edge struct having as component the node pair.
type edge struct {
	nodes [2]Point
}

func newEdge(p0, p1 Point) edge {
	return edge{nodes: [2]Point{p0, p1}}
}

// isEq check if two edges are approximately equals, regardless of the nodes order.
func (e edge) isEq(other edge) bool {
	na0, na1 := e.nodes[0], e.nodes[1]
	nb0, nb1 := other.nodes[0], other.nodes[1]

	return (na0.Equal(nb0) && na1.Equal(nb1)) ||
		(na0.Equal(nb1) && na1.Equal(nb0))
}

// circle defines the circumscribed circle of a triangle.
// The radius holds the squared distance between the center and any of the triangle vertices,
// so the containment test is also done on squared distances.
type circle struct {
	x, y, radius float64
}

// contains reports whether the point lies strictly inside the circle.
func (c circle) contains(p Point) bool {
	return p.distSq(Point{c.x, c.y}) < c.radius
}

// Triangle struct defines the basic components of a triangle.
// It's constructed by nodes, it's edges and the circumcircle which describes the triangle circumference.
type Triangle struct {
	Nodes  [3]Point
	edges  [3]edge
	circle circle
}

// NewTriangle creates a new triangle and computes its circumscribed circle.
// It returns ErrDegenerateTriangle if the three nodes are collinear or coincident.
func NewTriangle(p0, p1, p2 Point) (Triangle, error) {
	t := Triangle{
		Nodes: [3]Point{p0, p1, p2},
		edges: [3]edge{newEdge(p0, p1), newEdge(p1, p2), newEdge(p2, p0)},
	}

	ax, ay := p1.X-p0.X, p1.Y-p0.Y
	bx, by := p2.X-p0.X, p2.Y-p0.Y
	det := ax*by - ay*bx
	if math.Abs(det) < degenerateLimit || p0.Equal(p1) || p1.Equal(p2) || p2.Equal(p0) {
		return Triangle{}, errors.Wrapf(ErrDegenerateTriangle, "nodes %v %v %v", p0, p1, p2)
	}

	m := p1.X*p1.X - p0.X*p0.X + p1.Y*p1.Y - p0.Y*p0.Y
	u := p2.X*p2.X - p0.X*p0.X + p2.Y*p2.Y - p0.Y*p0.Y
	s := 1.0 / (2.0 * det)

	cx := ((p2.Y-p0.Y)*m + (p0.Y-p1.Y)*u) * s
	cy := ((p0.X-p2.X)*m + (p1.X-p0.X)*u) * s
	if math.IsNaN(cx) || math.IsNaN(cy) || math.IsInf(cx, 0) || math.IsInf(cy, 0) {
		return Triangle{}, errors.Wrapf(ErrDegenerateTriangle, "nodes %v %v %v", p0, p1, p2)
	}

	t.circle = circle{x: cx, y: cy}
	t.circle.radius = p0.distSq(Point{cx, cy})

	return t, nil
}

// Equal checks if two triangles share the same nodes, independently of their order.
func (t Triangle) Equal(other Triangle) bool {
	for _, on := range other.Nodes {
		found := false
		for _, n := range t.Nodes {
			if n.Equal(on) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, n := range t.Nodes {
		found := false
		for _, on := range other.Nodes {
			if n.Equal(on) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Centroid returns the center of mass of the triangle.
func (t Triangle) Centroid() Point {
	var cx, cy float64
	for _, n := range t.Nodes {
		cx += n.X / 3
		cy += n.Y / 3
	}
	return Point{cx, cy}
}

// Delaunay defines the main components for the triangulation.
type Delaunay struct {
	width     float64
	height    float64
	triangles []Triangle
	skipped   []Point
}

// Init initialize the delaunay structure with two triangles tiling the width x height rectangle.
func (d *Delaunay) Init(width, height int) *Delaunay {
	d.width = float64(width)
	d.height = float64(height)
	d.skipped = nil
	d.clear()

	return d
}

// clear resets the mesh to the two triangles splitting the domain along the
// top-left to bottom-right diagonal.
func (d *Delaunay) clear() {
	p0 := Point{0, 0}
	p1 := Point{d.width, 0}
	p2 := Point{d.width, d.height}
	p3 := Point{0, d.height}

	d.triangles = nil
	// An empty domain has no valid tiling.
	if t, err := NewTriangle(p0, p1, p2); err == nil {
		d.triangles = append(d.triangles, t)
	}
	if t, err := NewTriangle(p0, p2, p3); err == nil {
		d.triangles = append(d.triangles, t)
	}
}

// Insert adds the points to the mesh in the given order.
// Points which would produce a degenerate triangle are skipped and can be retrieved with Skipped.
func (d *Delaunay) Insert(points []Point) *Delaunay {
	for _, p := range points {
		_ = d.InsertPoint(p)
	}
	return d
}

// InsertPoint adds a single point to the mesh. Every triangle whose circumcircle
// contains the point is removed and the hole is re-triangulated by connecting the
// point to the edges of the hole. If any of the new triangles is degenerate the
// mesh is left untouched and an error wrapping ErrDegenerateTriangle is returned.
func (d *Delaunay) InsertPoint(p Point) error {
	var (
		edges   []edge
		polygon []edge
		temps   = make([]Triangle, 0, len(d.triangles)+2)
	)

	for _, t := range d.triangles {
		if t.circle.contains(p) {
			edges = append(edges, t.edges[0], t.edges[1], t.edges[2])
		} else {
			temps = append(temps, t)
		}
	}

	// Edges shared by two removed triangles cancel out, leaving the hole boundary.
edgesLoop:
	for _, e := range edges {
		for j := range polygon {
			if e.isEq(polygon[j]) {
				polygon = append(polygon[:j], polygon[j+1:]...)
				continue edgesLoop
			}
		}
		polygon = append(polygon, e)
	}

	for _, e := range polygon {
		t, err := NewTriangle(e.nodes[0], e.nodes[1], p)
		if err != nil {
			d.skipped = append(d.skipped, p)
			return errors.Wrapf(err, "inserting point %v", p)
		}
		temps = append(temps, t)
	}
	d.triangles = temps

	return nil
}

// GetTriangles returns the generated triangles.
func (d *Delaunay) GetTriangles() []Triangle {
	return d.triangles
}

// Skipped returns the points rejected since the last Init because their insertion was degenerate.
func (d *Delaunay) Skipped() []Point {
	return d.skipped
}
