package application

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecgdigitizer/internal/digitizer/domain"
)

func blankBitmap(w, h int) *domain.Bitmap {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return domain.NewBitmap(img)
}

func TestBuildOverlay_EmptyBaseIsReturnedUnchanged(t *testing.T) {
	base := &domain.Bitmap{}
	out := BuildOverlay(base, nil, nil, false)
	assert.Same(t, base, out)
}

func TestBuildOverlay_PreservesDimensions(t *testing.T) {
	base := blankBitmap(20, 16)
	out := BuildOverlay(base, nil, nil, false)
	require.NotNil(t, out)
	assert.Equal(t, base.Width, out.Width)
	assert.Equal(t, base.Height, out.Height)
}

func TestBuildOverlay_DrawsSmallGridLinesAtPitch(t *testing.T) {
	base := blankBitmap(20, 20)
	grid := domain.DefaultGridModel(20, 20, 4, 25, 10)
	out := BuildOverlay(base, grid, nil, false)
	// Column 4 and row 4 are small-grid lines only; column 0 and row 0 are
	// also large-grid lines and are drawn in the heavier colour.
	assert.Equal(t, smallGridColor, out.Pixels.RGBAAt(4, 5))
	assert.Equal(t, smallGridColor, out.Pixels.RGBAAt(5, 4))
}

func TestBuildOverlay_DrawsLargeGridLinesAtFivefoldPitch(t *testing.T) {
	base := blankBitmap(40, 40)
	grid := domain.DefaultGridModel(40, 40, 4, 25, 10)
	out := BuildOverlay(base, grid, nil, false)
	// LargeSquarePx == 5*SmallSquarePx == 20, so column 20 is a large-grid line.
	assert.Equal(t, largeGridColor, out.Pixels.RGBAAt(20, 7))
}

func TestBuildOverlay_DrawsRegionOutline(t *testing.T) {
	base := blankBitmap(20, 20)
	regions := []domain.LeadRegion{
		{Lead: domain.LeadI, Rect: image.Rect(2, 2, 10, 10)},
	}
	out := BuildOverlay(base, nil, regions, false)
	assert.Equal(t, regionColor, out.Pixels.RGBAAt(2, 2))
	assert.Equal(t, regionColor, out.Pixels.RGBAAt(9, 2))
	assert.Equal(t, regionColor, out.Pixels.RGBAAt(2, 9))
	// interior of the rect is untouched
	assert.NotEqual(t, regionColor, out.Pixels.RGBAAt(5, 5))
}

func TestBuildOverlay_CalibrationMarkerOnlyWhenDetected(t *testing.T) {
	base := blankBitmap(50, 10)

	withMarker := BuildOverlay(base, nil, nil, true)
	assert.Equal(t, calibColor, withMarker.Pixels.RGBAAt(0, 0))

	withoutMarker := BuildOverlay(base, nil, nil, false)
	assert.NotEqual(t, calibColor, withoutMarker.Pixels.RGBAAt(0, 0))
}
