package domain

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNewBitmap_DerivesDimensionsFromImageBounds(t *testing.T) {
	img := solidRGBA(10, 6, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	b := NewBitmap(img)

	assert.Equal(t, 10, b.Width)
	assert.Equal(t, 6, b.Height)
	assert.False(t, b.Empty())
}

func TestBitmapEmpty_NilOrZeroDimensions(t *testing.T) {
	assert.True(t, (*Bitmap)(nil).Empty())
	assert.True(t, (&Bitmap{}).Empty())
}

func TestBitmapGray_WhiteIsFullIntensity(t *testing.T) {
	img := solidRGBA(2, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	b := NewBitmap(img)
	assert.Equal(t, uint8(255), b.Gray(0, 0))
}

func TestBitmapGray_BlackIsZeroIntensity(t *testing.T) {
	img := solidRGBA(2, 2, color.RGBA{A: 255})
	b := NewBitmap(img)
	assert.Equal(t, uint8(0), b.Gray(0, 0))
}

func TestBitmapCrop_ProducesIndependentSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	b := NewBitmap(img)

	cropped := b.Crop(image.Rect(0, 0, 2, 2))

	require.Equal(t, 2, cropped.Width)
	require.Equal(t, 2, cropped.Height)
	redLuma := cropped.Gray(1, 1)
	assert.Greater(t, redLuma, uint8(0))

	b.Pixels.Set(1, 1, color.RGBA{R: 0, A: 255})
	assert.Equal(t, redLuma, cropped.Gray(1, 1))
}
