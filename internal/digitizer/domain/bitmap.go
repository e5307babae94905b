// Package domain holds the digitizer's value types: Bitmap, GridModel,
// LeadRegion, and LeadSignal.
package domain

import "image"

// Bitmap is a rectangular array of 8-bit-per-channel colour pixels, origin
// top-left. It is owned by the caller; the digitizer never mutates it.
type Bitmap struct {
	Width  int
	Height int
	Pixels *image.RGBA
}

// NewBitmap wraps a standard library RGBA image as a Bitmap.
func NewBitmap(img *image.RGBA) *Bitmap {
	b := img.Bounds()
	return &Bitmap{Width: b.Dx(), Height: b.Dy(), Pixels: img}
}

// Empty reports whether the bitmap carries no pixel data at all — the
// degraded-input case the pipeline must survive without panicking.
func (b *Bitmap) Empty() bool {
	return b == nil || b.Width == 0 || b.Height == 0 || b.Pixels == nil
}

// Gray returns the grayscale intensity (0-255) of the pixel at (x, y) using
// the standard luma weighting. Used by grid characterization and waveform
// tracing, both of which operate on single-channel intensity.
func (b *Bitmap) Gray(x, y int) uint8 {
	r, g, bl, _ := b.Pixels.At(x, y).RGBA()
	// RGBA() returns 16-bit-scaled channels; fold to 8-bit luma.
	return uint8((299*uint32(r>>8) + 587*uint32(g>>8) + 114*uint32(bl>>8)) / 1000)
}

// Crop returns a new Bitmap restricted to the given rectangle, sharing no
// memory with the original beyond the read-only pixel copy.
func (b *Bitmap) Crop(rect image.Rectangle) *Bitmap {
	rect = rect.Intersect(b.Pixels.Bounds())
	sub := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			sub.Set(x-rect.Min.X, y-rect.Min.Y, b.Pixels.At(x, y))
		}
	}
	return NewBitmap(sub)
}
