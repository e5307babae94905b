package application

import (
	"image/color"
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	"ecgdigitizer/internal/logging"
)

// RemoveGrid implements a strict fallback chain:
// color-aware -> morphological -> frequency-domain notch -> raw crop, each
// accepted only if a post-check finds enough surviving "ink" pixels.
func RemoveGrid(crop *domain.Bitmap, gray [][]float64, grid *domain.GridModel, cfg config.DigitizerConfig, logger logging.Logger) ([][]float64, string) {
	if out, ok := colorAwareRemoval(crop, gray, cfg); ok {
		return out, "color_aware"
	}
	if out, ok := morphologicalRemoval(gray, grid, cfg); ok {
		return out, "morphological"
	}
	if out, ok := frequencyNotchRemoval(gray, grid, cfg); ok {
		return out, "frequency_notch"
	}
	if logger != nil {
		logger.Warn("grid removal fell back to raw crop")
	}
	return gray, "raw_crop"
}

func inkSurvives(gray [][]float64, cfg config.DigitizerConfig) bool {
	total := 0
	ink := 0
	for _, row := range gray {
		for _, v := range row {
			total++
			if v < 128 { // "ink" is dark relative to white paper
				ink++
			}
		}
	}
	if total == 0 {
		return false
	}
	return float64(ink)/float64(total) >= cfg.InkSurvivalFraction
}

// colorAwareRemoval detects the grid colour (red/green/blue/black) in HSV
// space and, for a coloured grid, masks it out and replaces it with white.
func colorAwareRemoval(crop *domain.Bitmap, gray [][]float64, cfg config.DigitizerConfig) ([][]float64, bool) {
	if crop == nil || crop.Pixels == nil {
		return nil, false
	}
	w, h := crop.Width, crop.Height
	total := w * h
	if total == 0 {
		return nil, false
	}
	var redCount, greenCount, blueCount int
	hue := make([][]float64, h)
	sat := make([][]float64, h)
	for y := 0; y < h; y++ {
		hue[y] = make([]float64, w)
		sat[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			c := crop.Pixels.RGBAAt(x, y)
			hh, ss, _ := rgbToHSV(c)
			hue[y][x] = hh
			sat[y][x] = ss
			if ss < 0.2 {
				continue // near-grayscale, not a colour-dominant pixel
			}
			switch {
			case hh < 15 || hh >= 345:
				redCount++
			case hh >= 90 && hh < 150:
				greenCount++
			case hh >= 180 && hh < 270:
				blueCount++
			}
		}
	}

	dominant := ""
	dominantCount := 0
	for name, count := range map[string]int{"red": redCount, "green": greenCount, "blue": blueCount} {
		if count > dominantCount {
			dominantCount = count
			dominant = name
		}
	}
	if float64(dominantCount)/float64(total) <= cfg.ColorDominanceFraction {
		return nil, false // "black" grid: color-aware stage declines, falls through
	}

	mask := make([][]bool, h)
	for y := 0; y < h; y++ {
		mask[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			if sat[y][x] < 0.2 {
				continue
			}
			hh := hue[y][x]
			switch dominant {
			case "red":
				mask[y][x] = hh < 15 || hh >= 345
			case "green":
				mask[y][x] = hh >= 90 && hh < 150
			case "blue":
				mask[y][x] = hh >= 180 && hh < 270
			}
		}
	}
	mask = dilateMask(mask, 2)

	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		copy(out[y], gray[y])
		for x := 0; x < w; x++ {
			if mask[y][x] {
				out[y][x] = 255
			}
		}
	}
	out = medianFilter2D(out, 3)

	if !inkSurvives(out, cfg) {
		return nil, false
	}
	return out, true
}

func rgbToHSV(c color.RGBA) (h, s, v float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255
	maxV := math.Max(r, math.Max(g, b))
	minV := math.Min(r, math.Min(g, b))
	v = maxV
	delta := maxV - minV
	if maxV == 0 {
		s = 0
	} else {
		s = delta / maxV
	}
	if delta == 0 {
		h = 0
	} else if maxV == r {
		h = 60 * math.Mod((g-b)/delta, 6)
	} else if maxV == g {
		h = 60 * ((b-r)/delta + 2)
	} else {
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

// morphologicalRemoval extracts horizontal and vertical grid lines via
// grayscale opening with line-shaped structuring elements and subtracts
// them from the inverted image.
func morphologicalRemoval(gray [][]float64, grid *domain.GridModel, cfg config.DigitizerConfig) ([][]float64, bool) {
	h := len(gray)
	if h == 0 {
		return nil, false
	}
	w := len(gray[0])
	kernelLen := int(math.Max(cfg.MorphKernelPitchMultiple*grid.SmallSquarePx, cfg.MorphKernelMinPx))
	if kernelLen < 1 {
		kernelLen = 1
	}

	inv := make([][]float64, h)
	for y := range inv {
		inv[y] = make([]float64, w)
		for x := range inv[y] {
			inv[y][x] = 255 - gray[y][x]
		}
	}

	horizontalLines := openGray(inv, kernelLen, 1)
	verticalLines := openGray(inv, 1, kernelLen)

	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			combined := math.Max(horizontalLines[y][x], verticalLines[y][x])
			cleanedInv := inv[y][x] - combined
			if cleanedInv < 0 {
				cleanedInv = 0
			}
			out[y][x] = 255 - cleanedInv
		}
	}
	if !inkSurvives(out, cfg) {
		return nil, false
	}
	return out, true
}

// frequencyNotchRemoval removes narrow bands around the grid fundamental and
// its first harmonics with a 1-D notch applied along every column and then
// along every row.
func frequencyNotchRemoval(gray [][]float64, grid *domain.GridModel, cfg config.DigitizerConfig) ([][]float64, bool) {
	h := len(gray)
	if h == 0 {
		return nil, false
	}
	w := len(gray[0])
	if grid.SmallSquarePx <= 0 {
		return nil, false
	}
	fundamentalRow := float64(h) / grid.SmallSquarePx
	fundamentalCol := float64(w) / grid.SmallSquarePx

	// Apply the notch independently along rows and columns: for each
	// column, the row-direction DFT has its grid-fundamental bins zeroed;
	// symmetrically for each row's column-direction DFT. This realizes the
	// "zero narrow horizontal/vertical bands at harmonics" step without a
	// full complex 2-D FFT implementation.
	out := make([][]float64, h)
	for y := range out {
		out[y] = make([]float64, w)
		copy(out[y], gray[y])
	}

	for x := 0; x < w; x++ {
		col := make([]float64, h)
		for y := 0; y < h; y++ {
			col[y] = out[y][x]
		}
		filtered := notch1D(col, fundamentalRow, cfg.NotchHarmonics, cfg.NotchBandwidthBins)
		for y := 0; y < h; y++ {
			out[y][x] = filtered[y]
		}
	}
	for y := 0; y < h; y++ {
		out[y] = notch1D(out[y], fundamentalCol, cfg.NotchHarmonics, cfg.NotchBandwidthBins)
	}

	if !inkSurvives(out, cfg) {
		return nil, false
	}
	return out, true
}

// notch1D removes energy at harmonics of `fundamental` cycles-per-signal
// from x by subtracting the reconstructed harmonic component (a compact,
// dependency-free stand-in for zeroing DFT bins and inverse-transforming).
func notch1D(x []float64, fundamental float64, harmonics, bandwidthBins int) []float64 {
	n := len(x)
	if n == 0 || fundamental <= 0 {
		return x
	}
	out := append([]float64(nil), x...)
	mean := mean(x)
	for harm := 1; harm <= harmonics; harm++ {
		k := fundamental * float64(harm)
		for b := -bandwidthBins; b <= bandwidthBins; b++ {
			freq := k + float64(b)
			if freq <= 0 {
				continue
			}
			var re, im float64
			w := 2 * math.Pi * freq / float64(n)
			for t := 0; t < n; t++ {
				angle := w * float64(t)
				re += (x[t] - mean) * math.Cos(angle)
				im += (x[t] - mean) * math.Sin(angle)
			}
			re *= 2.0 / float64(n)
			im *= 2.0 / float64(n)
			for t := 0; t < n; t++ {
				angle := w * float64(t)
				out[t] -= re*math.Cos(angle) + im*math.Sin(angle)
			}
		}
	}
	return out
}

func medianFilter2D(img [][]float64, k int) [][]float64 {
	h := len(img)
	if h == 0 {
		return img
	}
	w := len(img[0])
	half := k / 2
	out := make([][]float64, h)
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			var window []float64
			for dy := -half; dy <= half; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -half; dx <= half; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					window = append(window, img[ny][nx])
				}
			}
			out[y][x] = median(window)
		}
	}
	return out
}
