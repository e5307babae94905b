package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	"ecgdigitizer/internal/logging"
)

// CharacterizeGrid detects the small-square pixel pitch:
// primary FFT-peak method over a central column strip, secondary Hough-line
// fallback, and a final fixed fallback.
func CharacterizeGrid(gray [][]float64, width, height int, cfg config.DigitizerConfig, logger logging.Logger) (*domain.GridModel, []string) {
	var warnings []string

	pitch, ok := gridPitchFromFFT(gray, width, height, cfg)
	method := "fft"
	if !ok {
		pitch, ok = gridPitchFromHough(gray, width, height, cfg)
		method = "hough"
	}
	if !ok {
		pitch = cfg.FallbackPitchPx
		method = "fallback"
		warnings = append(warnings, "grid pitch detection failed: using fixed 4px fallback")
	}
	if logger != nil {
		logger.Debug("grid pitch detected", "method", method, "pitch_px", pitch)
	}

	return &domain.GridModel{
		SmallSquarePx:         pitch,
		LargeSquarePx:         pitch * cfg.LargeSquareRatio,
		PaperSpeedMMPerSec:    cfg.PaperSpeedMMPerSec,
		AmplitudeScaleMMPerMV: cfg.AmplitudeScaleMMPerMV,
		ImageWidth:            width,
		ImageHeight:           height,
	}, warnings
}

// gridPitchFromFFT is the primary pitch-detection method: a central
// column strip, mean-subtracted, real DFT, ignore the first 3 bins, peak bin
// k gives pitch = strip_length/k.
func gridPitchFromFFT(gray [][]float64, width, height int, cfg config.DigitizerConfig) (float64, bool) {
	if width == 0 || height == 0 {
		return 0, false
	}
	col := width / 2
	strip := make([]float64, height)
	for y := 0; y < height; y++ {
		strip[y] = gray[y][col]
	}
	strip = subtractMean(strip)
	mag := realDFTMagnitude(strip)
	if len(mag) <= 3 {
		return 0, false
	}
	peakBin := -1
	peakVal := 0.0
	for k := 3; k < len(mag); k++ {
		if mag[k] > peakVal {
			peakVal = mag[k]
			peakBin = k
		}
	}
	if peakBin <= 0 {
		return 0, false
	}
	pitch := float64(height) / float64(peakBin)
	if pitch > cfg.MinGridPitchPx && pitch < cfg.MaxGridPitchPx {
		return pitch, true
	}
	return 0, false
}

// gridPitchFromHough is the secondary pitch-detection method: detect
// near-horizontal lines, take the y-gaps between consecutive line rows that
// fall in the accepted band, and report their median. In place of a full
// (rho, theta) Hough accumulator, rows whose summed Sobel edge magnitude
// exceeds the mean row sum are treated as line votes —
// equivalent to a Hough accumulator restricted to theta within
// HoughMaxAngleDeg of horizontal, which for a pixel-aligned grid image
// collapses the accumulator onto the row axis.
func gridPitchFromHough(gray [][]float64, width, height int, cfg config.DigitizerConfig) (float64, bool) {
	edges := sobelMagnitudeFromGray(gray, width, height)
	rowScore := make([]float64, height)
	for y := 0; y < height; y++ {
		var s float64
		for x := 0; x < width; x++ {
			s += edges[y][x]
		}
		rowScore[y] = s
	}
	m := mean(rowScore)
	var lineRows []int
	for y, s := range rowScore {
		if s > m {
			lineRows = append(lineRows, y)
		}
	}
	if len(lineRows) < 2 {
		return 0, false
	}
	var gaps []float64
	for i := 1; i < len(lineRows); i++ {
		gap := float64(lineRows[i] - lineRows[i-1])
		if gap > cfg.HoughMinGapPx && gap < cfg.HoughMaxGapPx {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return 0, false
	}
	return median(gaps), true
}

func sobelMagnitudeFromGray(gray [][]float64, w, h int) [][]float64 {
	out := make([][]float64, h)
	for y := range out {
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

// DetectCalibrationPulse scans the leftmost and rightmost strips for a
// calibration-pulse rectangle.
func DetectCalibrationPulse(gray [][]float64, width, height int, grid *domain.GridModel, cfg config.DigitizerConfig) (mv float64, detected bool, warnings []string) {
	stripWidth := int(float64(width) * 0.15)
	if stripWidth < 1 {
		return 0, false, nil
	}
	candidates := [][2]int{{0, stripWidth}, {width - stripWidth, width}}
	expectedHeight := grid.AmplitudeScaleMMPerMV * grid.SmallSquarePx

	for _, c := range candidates {
		if m, ok := scanStripForPulse(gray, height, c[0], c[1], expectedHeight, cfg); ok {
			if math.Abs(m-cfg.CalPulseExpectedMV) > cfg.CalPulseWarnDeltaMV {
				warnings = append(warnings, "calibration pulse deviates from 1.0 mV by more than 0.15 mV")
			}
			return m, true, warnings
		}
	}
	return 0, false, warnings
}

func scanStripForPulse(gray [][]float64, height, x0, x1 int, expectedHeight float64, cfg config.DigitizerConfig) (float64, bool) {
	var hist [256]int
	total := 0
	for y := 0; y < height; y++ {
		for x := x0; x < x1; x++ {
			v := int(clampFloat(gray[y][x], 0, 255))
			hist[v]++
			total++
		}
	}
	if total == 0 {
		return 0, false
	}
	t := otsuThreshold(hist, total)
	mask := make([][]bool, height)
	for y := 0; y < height; y++ {
		mask[y] = make([]bool, x1-x0)
		for x := x0; x < x1; x++ {
			mask[y][x-x0] = gray[y][x] < float64(t)
		}
	}
	comps := allConnectedComponents(mask)
	for _, comp := range comps {
		minX, minY, maxX, maxY := boundingBox(comp)
		w := float64(maxX - minX + 1)
		h := float64(maxY - minY + 1)
		if w == 0 || h == 0 {
			continue
		}
		aspect := w / h
		if aspect < cfg.CalPulseMinAspect || aspect > cfg.CalPulseMaxAspect {
			continue
		}
		if math.Abs(h-expectedHeight) > cfg.CalPulseHeightTolerance*expectedHeight {
			continue
		}
		mv := h / pxPerMVFromExpectedHeight(expectedHeight)
		return mv, true
	}
	return 0, false
}

// pxPerMVFromExpectedHeight recovers pixels-per-mV from the expected pulse
// height (amplitude_scale*small_square px for 1 mV).
func pxPerMVFromExpectedHeight(expectedHeightForOneMV float64) float64 {
	return expectedHeightForOneMV
}
