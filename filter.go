package triangle

import "image"

// Filter transforms a source image into a new image of the same size.
type Filter interface {
	Apply(src *image.NRGBA) *image.NRGBA
}

// Blur is a box blur filter.
type Blur struct {
	Radius int
}

// Apply implements the Filter interface.
func (b Blur) Apply(src *image.NRGBA) *image.NRGBA {
	return BlurFilter(src, b.Radius)
}

// Edge is the edge emphasis filter.
type Edge struct {
	Radius int
}

// Apply implements the Filter interface.
func (e Edge) Apply(src *image.NRGBA) *image.NRGBA {
	return EdgeFilter(src, e.Radius)
}

// Gray desaturates the image.
type Gray struct{}

// Apply implements the Filter interface.
func (Gray) Apply(src *image.NRGBA) *image.NRGBA {
	return Grayscale(src)
}

// Chain implements a list of filters that can be applied to an image at once.
type Chain struct {
	Filters []Filter
}

// NewChain creates a new filter chain and initializes it with the given list of filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{
		Filters: filters,
	}
}

// Apply runs all the filters in order, each one consuming the output of the previous.
// An empty chain returns the source image.
func (c *Chain) Apply(src *image.NRGBA) *image.NRGBA {
	dst := src
	for _, f := range c.Filters {
		dst = f.Apply(dst)
	}
	return dst
}
