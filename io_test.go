package triangle

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndOpen(t *testing.T) {
	src := noiseImage(12, 7, 6)
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, Save(src, path))

	img, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), img.Bounds())
	assert.Equal(t, src.Pix, ImgToNRGBA(img).Pix)
}

func TestDecode(t *testing.T) {
	src := squareImage(9, 9)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	img, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Pix, ImgToNRGBA(img).Pix)

	_, err = Decode(bytes.NewBufferString("not an image"))
	assert.Error(t, err)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestSaveUnsupportedFormat(t *testing.T) {
	err := Save(squareImage(4, 4), filepath.Join(t.TempDir(), "out.xyz"))
	assert.Error(t, err)
}
