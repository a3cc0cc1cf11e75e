/*
Package triangle is an image processing library which converts images to computer generated art using delaunay triangulation.

The processing pipeline blurs the source image, emphasizes its edges with a convolution kernel,
samples points from the most detailed regions and incrementally triangulates them.
The resulting triangles, together with the source image, are then handed over to a Drawer
which can render them either as raster or as SVG.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ triangle --help

Example to generate a triangulated image and save the result as PNG:

	package main

	import (
		"log"

		"github.com/lowpoly/triangle"
	)

	func main() {
		src, err := triangle.Open("input.jpg")
		if err != nil {
			log.Fatal(err)
		}

		p := triangle.NewProcessor()
		res, err := p.Triangulate(src)
		if err != nil {
			log.Fatal(err)
		}

		img, err := triangle.NewDrawer().Draw(res.Source, res.Triangles)
		if err != nil {
			log.Fatal(err)
		}
		if err := triangle.Save(img, "output.png"); err != nil {
			log.Fatal(err)
		}
	}
*/
package triangle
