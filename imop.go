package triangle

import (
	"image"
	"image/color"
	"math"
	"runtime"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// bandWidth is the number of image columns processed by a single worker.
const bandWidth = 32

// Grayscale converts the image to grayscale using Rec. 709 luma weights. The alpha channel is preserved.
func Grayscale(src *image.NRGBA) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := src.PixOffset(x, y)
			r, g, b := src.Pix[i], src.Pix[i+1], src.Pix[i+2]
			lum := float64(r)*0.2126 + float64(g)*0.7152 + float64(b)*0.0722
			c := uint8(Clamp(math.Round(lum), 0, 255))

			j := dst.PixOffset(x, y)
			dst.Pix[j] = c
			dst.Pix[j+1] = c
			dst.Pix[j+2] = c
			dst.Pix[j+3] = src.Pix[i+3]
		}
	}
	return dst
}

// ImgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
// An *image.NRGBA already anchored at the origin is returned as is.
func ImgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	case *image.Gray:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := src.Pix[si]
				dst.Pix[di+0] = c
				dst.Pix[di+1] = c
				dst.Pix[di+2] = c
				dst.Pix[di+3] = 0xff
				di += 4
				si++
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}

// Convolve applies a mathematical operation over the source image by convolving the
// matrix values over the red channel of the pixels. The matrix must be a square of odd side,
// stored row by row. Neighbours falling outside the image contribute nothing and the matrix
// is not renormalized for them. The resulting red value is clamped into the [0, 255] range,
// while the green, blue and alpha channels are copied from the source pixel.
// The source image is not modified.
func Convolve(img *image.NRGBA, matrix []float64) *image.NRGBA {
	var (
		bounds = img.Bounds()
		width  = bounds.Dx()
		height = bounds.Dy()
		size   = int(math.Sqrt(float64(len(matrix))))
		dim    = (size - 1) / 2
		dst    = image.NewNRGBA(image.Rect(0, 0, width, height))
	)

	forEachBand(width, func(from, to int) {
		for x := from; x < to; x++ {
			for y := 0; y < height; y++ {
				var r float64

				for row := -dim; row <= dim; row++ {
					sy := y + row
					if sy < 0 || sy >= height {
						continue
					}
					kstep := (row + dim) * size

					for col := -dim; col <= dim; col++ {
						sx := x + col
						if sx >= 0 && sx < width {
							r += float64(img.Pix[img.PixOffset(bounds.Min.X+sx, bounds.Min.Y+sy)]) * matrix[(col+dim)+kstep]
						}
					}
				}

				si := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
				di := dst.PixOffset(x, y)
				dst.Pix[di] = uint8(Clamp(r, 0, 255))
				dst.Pix[di+1] = img.Pix[si+1]
				dst.Pix[di+2] = img.Pix[si+2]
				dst.Pix[di+3] = img.Pix[si+3]
			}
		}
	})

	return dst
}

// forEachBand splits the [0, width) column range into bands and runs fn over them
// on a bounded number of goroutines. It returns once every band has been processed.
func forEachBand(width int, fn func(from, to int)) {
	var g errgroup.Group
	g.SetLimit(Max(runtime.GOMAXPROCS(0), 1))

	for from := 0; from < width; from += bandWidth {
		from, to := from, Min(from+bandWidth, width)
		g.Go(func() error {
			fn(from, to)
			return nil
		})
	}
	// The bands never fail.
	_ = g.Wait()
}

// BlurKernel returns a box filter matrix of side 2*size+1 whose weights sum up to one.
func BlurKernel(size int) []float64 {
	var (
		side   = size*2 + 1
		length = side * side
		matrix = make([]float64, length)
	)

	for i := 0; i < length; i++ {
		matrix[i] = 1 / float64(length)
	}

	return matrix
}

// EdgeKernel returns an edge emphasis matrix of side 2*size+1. Every cell is set to 1/side
// except the center cell, which is set to -side. A size of zero yields the single cell -1.
func EdgeKernel(size int) []float64 {
	var (
		side   = size*2 + 1
		length = side * side
		center = length / 2
		matrix = make([]float64, length)
	)

	for i := 0; i < length; i++ {
		if i == center {
			matrix[i] = -float64(length) / float64(side)
		} else {
			matrix[i] = 1 / float64(side)
		}
	}
	return matrix
}

// BlurFilter smooths the red channel of the image with a box filter of the given radius.
func BlurFilter(img *image.NRGBA, size int) *image.NRGBA {
	return Convolve(img, BlurKernel(size))
}

// EdgeFilter highlights the red channel transitions of the image.
func EdgeFilter(img *image.NRGBA, size int) *image.NRGBA {
	return Convolve(img, EdgeKernel(size))
}

// Clamp restricts the value to the [lo, hi] interval.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smallest value between the numbers.
func Min[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest value between the numbers.
func Max[T constraints.Ordered](values ...T) T {
	var acc T = values[0]

	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}
