package application

import (
	"image"
	"image/color"
	"math"

	"ecgdigitizer/internal/digitizer/domain"
)

// Preprocess runs perspective correction followed by grayscale intensity
// normalization. It never fails: when the perspective
// heuristic does not find a usable quadrilateral it returns the input
// unmodified plus a warning rather than failing the whole pipeline.
func Preprocess(bmp *domain.Bitmap, minAreaFraction float64) (corrected *domain.Bitmap, gray [][]float64, warnings []string) {
	if bmp.Empty() {
		return bmp, nil, []string{"empty bitmap: preprocessing skipped"}
	}

	working := bmp
	if quad, ok := findDocumentQuad(bmp, minAreaFraction); ok {
		working = warpPerspective(bmp, quad)
	} else {
		warnings = append(warnings, "perspective correction skipped: no 4-vertex contour covering >=20% of image area")
	}

	gray = normalizeGray(working)
	return working, gray, warnings
}

// findDocumentQuad locates the paper's outer boundary: edge-detect, dilate, find
// the largest external contour, and accept it only when its area covers at
// least minAreaFraction of the image and it reduces to four extreme corner
// points (this module's substitute for a 4-vertex polygonal approximation).
func findDocumentQuad(bmp *domain.Bitmap, minAreaFraction float64) ([4]point, bool) {
	edges := sobelMagnitude(bmp)
	mask := thresholdEdges(edges, 64)
	dilated := dilateMask(mask, 2)
	comps := allConnectedComponents(dilated)
	if len(comps) == 0 {
		return [4]point{}, false
	}
	largest := comps[0]
	area := float64(len(largest))
	imgArea := float64(bmp.Width * bmp.Height)
	if imgArea == 0 || area/imgArea < minAreaFraction {
		return [4]point{}, false
	}
	minX, minY, maxX, maxY := boundingBox(largest)
	// Extreme corners of the component approximate the 4-vertex polygon.
	corners := [4]point{
		{float64(minX), float64(minY)},
		{float64(maxX), float64(minY)},
		{float64(maxX), float64(maxY)},
		{float64(minX), float64(maxY)},
	}
	tl, tr, br, bl := orderQuadCorners(corners)
	return [4]point{tl, tr, br, bl}, true
}

func sobelMagnitude(bmp *domain.Bitmap) [][]float64 {
	w, h := bmp.Width, bmp.Height
	gray := make([][]float64, h)
	for y := 0; y < h; y++ {
		gray[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			gray[y][x] = float64(bmp.Gray(x, y))
		}
	}
	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
	}
	gx := [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	gy := [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sx, sy float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					v := gray[y+dy][x+dx]
					sx += v * gx[dy+1][dx+1]
					sy += v * gy[dy+1][dx+1]
				}
			}
			out[y][x] = math.Hypot(sx, sy)
		}
	}
	return out
}

func thresholdEdges(edges [][]float64, t float64) [][]bool {
	h := len(edges)
	if h == 0 {
		return nil
	}
	w := len(edges[0])
	out := make([][]bool, h)
	for y := 0; y < h; y++ {
		out[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			out[y][x] = edges[y][x] > t
		}
	}
	return out
}

// warpPerspective resamples bmp so the quadrilateral maps onto an
// axis-aligned rectangle sized as the longer of its opposite edges.
func warpPerspective(bmp *domain.Bitmap, quad [4]point) *domain.Bitmap {
	tl, tr, br, bl := quad[0], quad[1], quad[2], quad[3]
	w, h := targetRectDims(tl, tr, br, bl)

	dst := [4]point{{0, 0}, {float64(w - 1), 0}, {float64(w - 1), float64(h - 1)}, {0, float64(h - 1)}}
	fwd := computeHomography(dst, [4]point{tl, tr, br, bl}) // dst -> src, so we can sample

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := fwd.apply(float64(x), float64(y))
			out.Set(x, y, bilinearSample(bmp, sx, sy))
		}
	}
	return domain.NewBitmap(out)
}

func bilinearSample(bmp *domain.Bitmap, x, y float64) color.RGBA {
	x = clampFloat(x, 0, float64(bmp.Width-1))
	y = clampFloat(y, 0, float64(bmp.Height-1))
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	x1, y1 := minInt(x0+1, bmp.Width-1), minInt(y0+1, bmp.Height-1)
	fx, fy := x-float64(x0), y-float64(y0)

	c00 := bmp.Pixels.RGBAAt(x0, y0)
	c10 := bmp.Pixels.RGBAAt(x1, y0)
	c01 := bmp.Pixels.RGBAAt(x0, y1)
	c11 := bmp.Pixels.RGBAAt(x1, y1)

	lerp := func(a, b uint8, t float64) float64 { return float64(a)*(1-t) + float64(b)*t }
	r := lerp(lerp(c00.R, c10.R, fx), lerp(c01.R, c11.R, fx), fy)
	g := lerp(lerp(c00.G, c10.G, fx), lerp(c01.G, c11.G, fx), fy)
	b := lerp(lerp(c00.B, c10.B, fx), lerp(c01.B, c11.B, fx), fy)
	return color.RGBA{R: clamp255(r), G: clamp255(g), B: clamp255(b), A: 0xff}
}

// normalizeGray converts bmp to grayscale and stretches intensity to the
// full 0-255 range.
func normalizeGray(bmp *domain.Bitmap) [][]float64 {
	w, h := bmp.Width, bmp.Height
	gray := make([][]float64, h)
	minV, maxV := 255.0, 0.0
	for y := 0; y < h; y++ {
		gray[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			v := float64(bmp.Gray(x, y))
			gray[y][x] = v
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
	}
	spread := maxV - minV
	if spread < 1e-9 {
		return gray
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gray[y][x] = (gray[y][x] - minV) * 255.0 / spread
		}
	}
	return gray
}
