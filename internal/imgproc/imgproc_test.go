package imgproc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecoderRoundTrip(t *testing.T) {
	data := pngBytes(t, 40, 30)

	img, err := Decoder{}.Decode(data)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestDecoderRejectsGarbage(t *testing.T) {
	img, err := Decoder{}.Decode([]byte("definitely not an image"))
	assert.Error(t, err)
	assert.Nil(t, img)
}

func TestPrepareUpscalesNarrowScans(t *testing.T) {
	img, err := Decoder{}.Decode(pngBytes(t, 200, 100))
	require.NoError(t, err)

	out, err := Preprocessor{}.Prepare(img)
	require.NoError(t, err)
	assert.Equal(t, 1000, out.Bounds().Dx())
	assert.Equal(t, 500, out.Bounds().Dy()) // aspect ratio preserved
}

func TestPrepareKeepsWideScans(t *testing.T) {
	img, err := Decoder{}.Decode(pngBytes(t, 1200, 80))
	require.NoError(t, err)

	out, err := Preprocessor{}.Prepare(img)
	require.NoError(t, err)
	assert.Equal(t, 1200, out.Bounds().Dx())
	assert.Equal(t, 80, out.Bounds().Dy())
}

func TestPrepareNilImage(t *testing.T) {
	out, err := Preprocessor{}.Prepare(nil)
	assert.Error(t, err)
	assert.Nil(t, out)
}
