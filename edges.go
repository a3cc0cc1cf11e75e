package triangle

import (
	"image"
	"math"
	"math/rand"
)

// EdgeCandidates returns the coordinates of the pixels whose 3x3 neighbourhood red average
// is strictly greater than the threshold. Border pixels are averaged over their in-bounds
// neighbours only. The points are ordered column by column, top to bottom.
func EdgeCandidates(img *image.NRGBA, threshold int) []Point {
	var (
		bounds = img.Bounds()
		width  = bounds.Dx()
		height = bounds.Dy()
		bands  = make([][]Point, (width+bandWidth-1)/bandWidth)
	)

	forEachBand(width, func(from, to int) {
		var points []Point

		for x := from; x < to; x++ {
			for y := 0; y < height; y++ {
				var sum, total int

				for col := -1; col <= 1; col++ {
					sx := x + col
					if sx < 0 || sx >= width {
						continue
					}
					for row := -1; row <= 1; row++ {
						sy := y + row
						if sy >= 0 && sy < height {
							sum += int(img.Pix[img.PixOffset(bounds.Min.X+sx, bounds.Min.Y+sy)])
							total++
						}
					}
				}
				if total > 0 {
					sum /= total
				}
				if sum > threshold {
					points = append(points, Point{X: float64(x), Y: float64(y)})
				}
			}
		}
		bands[from/bandWidth] = points
	})

	var points []Point
	for _, band := range bands {
		points = append(points, band...)
	}
	return points
}

// SamplePoints draws min(floor(len(candidates)*pointRate), maxPoints) points out of the
// candidates, uniformly and with replacement, so the same point may be returned more than once.
func SamplePoints(candidates []Point, pointRate float64, maxPoints int, r *rand.Rand) []Point {
	ilen := len(candidates)
	if ilen == 0 || maxPoints <= 0 || pointRate <= 0 {
		return nil
	}

	limit := maxPoints
	if rated := math.Floor(float64(ilen) * pointRate); rated < float64(limit) {
		limit = int(rated)
	}

	dpoints := make([]Point, 0, limit)
	for i := 0; i < limit; i++ {
		dpoints = append(dpoints, candidates[r.Intn(ilen)])
	}
	return dpoints
}

// GetEdgePoints retrieves the triangle points after the edge emphasis filter has been applied.
func GetEdgePoints(img *image.NRGBA, threshold int, pointRate float64, maxPoints int, r *rand.Rand) []Point {
	return SamplePoints(EdgeCandidates(img, threshold), pointRate, maxPoints, r)
}
