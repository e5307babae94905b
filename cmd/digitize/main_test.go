package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBitmap_EmptyPathIsAnError(t *testing.T) {
	_, err := loadBitmap("")
	assert.Error(t, err)
}

func TestLoadBitmap_MissingFileIsAnError(t *testing.T) {
	_, err := loadBitmap(filepath.Join(t.TempDir(), "does-not-exist.png"))
	assert.Error(t, err)
}

func TestLoadBitmap_DecodesPNGIntoRGBABitmap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	bmp, err := loadBitmap(path)

	require.NoError(t, err)
	assert.Equal(t, 4, bmp.Width)
	assert.Equal(t, 3, bmp.Height)
}
