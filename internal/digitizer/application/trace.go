package application

import (
	"math"

	"ecgdigitizer/internal/config"
)

// ColumnTrace is the per-column centerline extraction result before
// calibration: for each column, the vertical pixel position of the trace
// centroid and a per-column confidence in [0,1].
type ColumnTrace struct {
	Y          []float64
	Confidence []float64
}

// ExtractCenterline traces the waveform's centerline: invert so the trace is
// bright, blur vertically, threshold each column at 20% of its max,
// intensity-weight the centroid above threshold, derive confidence from
// peak width, apply the continuity filter, then median-filter the result.
func ExtractCenterline(gray [][]float64, cfg config.DigitizerConfig) (*ColumnTrace, bool) {
	h := len(gray)
	if h == 0 {
		return nil, false
	}
	w := len(gray[0])

	inverted := make([][]float64, h)
	for y := 0; y < h; y++ {
		inverted[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			inverted[y][x] = 255 - gray[y][x]
		}
	}
	blurred := blurColumnsVertical(inverted, gaussianKernel1D(5))

	ys := make([]float64, w)
	conf := make([]float64, w)
	nonzero := 0

	for x := 0; x < w; x++ {
		col := make([]float64, h)
		for y := 0; y < h; y++ {
			col[y] = blurred[y][x]
		}
		colMax := 0.0
		for _, v := range col {
			if v > colMax {
				colMax = v
			}
		}
		if colMax < cfg.LowInkThreshold*255 {
			ys[x] = 0
			conf[x] = 0
			continue
		}
		threshold := cfg.ColumnPeakThresholdFraction * colMax
		var weightedSum, weightSum float64
		peakWidth := 0
		for y := 0; y < h; y++ {
			if col[y] >= threshold {
				weightedSum += float64(y) * col[y]
				weightSum += col[y]
				peakWidth++
			}
		}
		if weightSum == 0 {
			ys[x] = 0
			conf[x] = 0
			continue
		}
		ys[x] = weightedSum / weightSum
		if peakWidth < 1 {
			peakWidth = 1
		}
		conf[x] = math.Min(1, 10.0/float64(peakWidth))
		if conf[x] > 0.1 {
			nonzero++
		}
	}

	if float64(nonzero)/float64(w) < cfg.MinTracedColumnFraction {
		return nil, false
	}

	ys, conf = continuityFilter(ys, conf, float64(h), cfg.ContinuityJumpFraction)
	ys = medianFilter(ys, cfg.MedianFilterWidth)

	return &ColumnTrace{Y: ys, Confidence: conf}, true
}

func blurColumnsVertical(img [][]float64, kernel []float64) [][]float64 {
	h := len(img)
	if h == 0 {
		return img
	}
	w := len(img[0])
	out := make([][]float64, h)
	for y := range out {
		out[y] = make([]float64, w)
	}
	half := len(kernel) / 2
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			var sum float64
			for k, kv := range kernel {
				yy := y + (k - half)
				if yy < 0 {
					yy = 0
				}
				if yy >= h {
					yy = h - 1
				}
				sum += img[yy][x] * kv
			}
			out[y][x] = sum
		}
	}
	return out
}

// continuityFilter replaces a point whose vertical distance from BOTH
// neighbours exceeds jumpFraction*height with the neighbour average, halving
// its confidence.
func continuityFilter(ys, conf []float64, height, jumpFraction float64) ([]float64, []float64) {
	n := len(ys)
	if n < 3 {
		return ys, conf
	}
	outY := append([]float64(nil), ys...)
	outC := append([]float64(nil), conf...)
	limit := jumpFraction * height
	for i := 1; i < n-1; i++ {
		prevDist := math.Abs(ys[i] - ys[i-1])
		nextDist := math.Abs(ys[i] - ys[i+1])
		if prevDist > limit && nextDist > limit {
			outY[i] = (ys[i-1] + ys[i+1]) / 2
			outC[i] = conf[i] / 2
		}
	}
	return outY, outC
}
