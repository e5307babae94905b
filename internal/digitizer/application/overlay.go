package application

import (
	"image"
	"image/color"

	"ecgdigitizer/internal/digitizer/domain"
)

var (
	smallGridColor = color.RGBA{255, 210, 210, 255}
	largeGridColor = color.RGBA{255, 120, 120, 255}
	regionColor    = color.RGBA{0, 120, 220, 255}
	calibColor     = color.RGBA{0, 170, 0, 255}
)

// BuildOverlay draws the detected grid (small squares light, large squares
// heavier) and each lead region's outline over the corrected image, as
// a debug overlay for visual inspection. Only the outlines are drawn: lead
// names are not rasterized, and the function returns the overlay bitmap
// alone.
func BuildOverlay(base *domain.Bitmap, grid *domain.GridModel, regions []domain.LeadRegion, calibrationDetected bool) *domain.Bitmap {
	if base.Empty() {
		return base
	}
	img := image.NewRGBA(base.Pixels.Bounds())
	draw2 := func(x, y int, c color.RGBA) {
		if x >= 0 && x < base.Width && y >= 0 && y < base.Height {
			img.SetRGBA(x, y, c)
		}
	}
	for y := 0; y < base.Height; y++ {
		for x := 0; x < base.Width; x++ {
			img.SetRGBA(x, y, base.Pixels.RGBAAt(x, y))
		}
	}

	if grid != nil && grid.SmallSquarePx > 0 {
		for x := 0; x < base.Width; x += int(grid.SmallSquarePx) {
			for y := 0; y < base.Height; y++ {
				draw2(x, y, smallGridColor)
			}
		}
		for y := 0; y < base.Height; y += int(grid.SmallSquarePx) {
			for x := 0; x < base.Width; x++ {
				draw2(x, y, smallGridColor)
			}
		}
		if grid.LargeSquarePx > 0 {
			for x := 0; x < base.Width; x += int(grid.LargeSquarePx) {
				for y := 0; y < base.Height; y++ {
					draw2(x, y, largeGridColor)
				}
			}
			for y := 0; y < base.Height; y += int(grid.LargeSquarePx) {
				for x := 0; x < base.Width; x++ {
					draw2(x, y, largeGridColor)
				}
			}
		}
	}

	for _, r := range regions {
		drawRect(draw2, r.Rect, regionColor)
	}

	if calibrationDetected {
		// Small marker block in the top-left corner stands in for the
		// "CAL DETECTED" annotation.
		for y := 0; y < 6 && y < base.Height; y++ {
			for x := 0; x < 40 && x < base.Width; x++ {
				draw2(x, y, calibColor)
			}
		}
	}

	return domain.NewBitmap(img)
}

func drawRect(set func(x, y int, c color.RGBA), rect image.Rectangle, c color.RGBA) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		set(x, rect.Min.Y, c)
		set(x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		set(rect.Min.X, y, c)
		set(rect.Max.X-1, y, c)
	}
}
