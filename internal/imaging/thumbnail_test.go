package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestThumbnailDownscalesLargeImage(t *testing.T) {
	original := encodePNG(t, 1600, 900)

	thumb, err := Thumbnail(original)
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)

	bounds := decoded.Bounds()
	assert.Equal(t, ThumbMaxSize, bounds.Dx())
	assert.Equal(t, 270, bounds.Dy())
}

func TestThumbnailKeepsSmallImageDimensions(t *testing.T) {
	original := encodePNG(t, 100, 80)

	thumb, err := Thumbnail(original)
	require.NoError(t, err)

	decoded, err := webp.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 80, decoded.Bounds().Dy())
}

func TestThumbnailRejectsNonImage(t *testing.T) {
	_, err := Thumbnail([]byte("definitely not an image"))
	assert.Error(t, err)
}
