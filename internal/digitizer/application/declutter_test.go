package application

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecgdigitizer/internal/digitizer/domain"
)

func TestInkSurvives_AboveFraction(t *testing.T) {
	cfg := testDigitizerConfig()
	gray := flatGray(10, 10, 255)
	gray[0][0] = 0
	gray[0][1] = 0
	assert.True(t, inkSurvives(gray, cfg)) // 2/100 = 0.02 >= 0.005
}

func TestInkSurvives_BelowFraction(t *testing.T) {
	cfg := testDigitizerConfig()
	gray := flatGray(1000, 1, 255)
	assert.False(t, inkSurvives(gray, cfg))
}

func TestInkSurvives_EmptyIsFalse(t *testing.T) {
	assert.False(t, inkSurvives(nil, testDigitizerConfig()))
}

func TestColorAwareRemoval_NilCropFails(t *testing.T) {
	_, ok := colorAwareRemoval(nil, nil, testDigitizerConfig())
	assert.False(t, ok)
}

func TestColorAwareRemoval_GrayscaleGridDeclinesAndFallsThrough(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	bmp := domain.NewBitmap(img)
	gray := flatGray(10, 10, 200)
	_, ok := colorAwareRemoval(bmp, gray, testDigitizerConfig())
	assert.False(t, ok)
}

func TestColorAwareRemoval_RedGridIsMaskedOut(t *testing.T) {
	w, h := 30, 10
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	gray := make([][]float64, h)
	for y := 0; y < h; y++ {
		gray[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			switch {
			case x == 0 || x == w-1:
				img.Set(x, y, color.RGBA{R: 255, A: 255})
				gray[y][x] = 255
			case x >= 12 && x <= 18:
				img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				gray[y][x] = 0
			default:
				img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
				gray[y][x] = 255
			}
		}
	}
	bmp := domain.NewBitmap(img)
	out, ok := colorAwareRemoval(bmp, gray, testDigitizerConfig())
	require.True(t, ok)
	assert.Len(t, out, h)
	assert.InDelta(t, 0, out[5][15], 1) // ink column, far from the grid lines, survives
}
