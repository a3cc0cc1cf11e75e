package triangle

import (
	"image"
	"image/color"
)

// prng is a Park-Miller minimal standard generator. It always starts from the
// same state, so the grain pattern is stable across runs.
type prng struct {
	a         int
	m         int
	randomNum int
	div       float64
}

func newPrng() *prng {
	return &prng{
		a:         16807,
		m:         0x7fffffff,
		randomNum: 1,
		div:       1.0 / 0x7fffffff,
	}
}

// Noise applies a noise factor over the image, like adobe's grain filter.
func Noise(amount int, src image.Image) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	rnd := newPrng()

	for x := 0; x < b.Dx(); x++ {
		for y := 0; y < b.Dy(); y++ {
			noise := (rnd.randomSeed() - 0.1) * float64(amount)
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			rf, gf, bf := float64(c.R), float64(c.G), float64(c.B)

			// Only apply the noise if none of the channels would overflow.
			if Max(rf, gf, bf)+noise < 255 && Min(rf, gf, bf)+noise > 0 {
				rf += noise
				gf += noise
				bf += noise
			}
			dst.SetNRGBA(x, y, color.NRGBA{
				R: uint8(Clamp(rf, 0, 255)),
				G: uint8(Clamp(gf, 0, 255)),
				B: uint8(Clamp(bf, 0, 255)),
				A: c.A,
			})
		}
	}
	return dst
}

func (p *prng) nextLongRand(seed int) int {
	lo := p.a * (seed & 0xffff)
	hi := p.a * (seed >> 16)
	lo += (hi & 0x7fff) << 16

	if lo > p.m {
		lo &= p.m
		lo++
	}
	lo += hi >> 15
	if lo > p.m {
		lo &= p.m
		lo++
	}
	return lo
}

func (p *prng) randomSeed() float64 {
	p.randomNum = p.nextLongRand(p.randomNum)
	return float64(p.randomNum) * p.div
}
