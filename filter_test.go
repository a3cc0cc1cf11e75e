package triangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	src := squareImage(30, 20)

	assert.Same(t, src, NewChain().Apply(src))

	expected := EdgeFilter(BlurFilter(src, 2), 1)
	got := NewChain(Blur{Radius: 2}, Edge{Radius: 1}).Apply(src)
	assert.Equal(t, expected.Pix, got.Pix)

	gray := NewChain(Gray{}).Apply(noiseImage(5, 5, 1))
	for i := 0; i < len(gray.Pix); i += 4 {
		assert.Equal(t, gray.Pix[i], gray.Pix[i+1])
		assert.Equal(t, gray.Pix[i], gray.Pix[i+2])
	}
}
