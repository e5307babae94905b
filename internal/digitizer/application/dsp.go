package application

import (
	"math"
	"sort"
)

// mean returns the arithmetic mean of xs, or 0 for an empty slice.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s / float64(len(xs))
}

// stddev returns the population standard deviation of xs.
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	s := 0.0
	for _, x := range xs {
		d := x - m
		s += d * d
	}
	return math.Sqrt(s / float64(len(xs)))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	cp := append([]float64(nil), xs...)
	sort.Float64s(cp)
	n := len(cp)
	if n%2 == 1 {
		return cp[n/2]
	}
	return (cp[n/2-1] + cp[n/2]) / 2
}

// realDFTMagnitude computes |X[k]| for k=0..n/2 of the real sequence x using
// the direct O(n^2) definition. The strips this is applied to (a grid-pitch
// column or a lead's centerline) are short enough that the naive transform
// is acceptable; no FFT library is pulled in for a single narrow-band
// magnitude spectrum.
func realDFTMagnitude(x []float64) []float64 {
	n := len(x)
	half := n/2 + 1
	mag := make([]float64, half)
	for k := 0; k < half; k++ {
		var re, im float64
		w := -2 * math.Pi * float64(k) / float64(n)
		for t, v := range x {
			angle := w * float64(t)
			re += v * math.Cos(angle)
			im += v * math.Sin(angle)
		}
		mag[k] = math.Hypot(re, im)
	}
	return mag
}

// subtractMean returns x with its mean removed.
func subtractMean(x []float64) []float64 {
	m := mean(x)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - m
	}
	return out
}

// movingAverage smooths x with a centered window of windowLen samples.
func movingAverage(x []float64, windowLen int) []float64 {
	if windowLen < 1 {
		windowLen = 1
	}
	out := make([]float64, len(x))
	half := windowLen / 2
	var sum float64
	for i := range x {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(x) {
			hi = len(x) - 1
		}
		sum = 0
		for j := lo; j <= hi; j++ {
			sum += x[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// medianFilter applies a sliding median filter of the given odd width.
func medianFilter(x []float64, width int) []float64 {
	if width < 1 {
		width = 1
	}
	if width%2 == 0 {
		width++
	}
	half := width / 2
	out := make([]float64, len(x))
	for i := range x {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(x) {
			hi = len(x) - 1
		}
		out[i] = median(x[lo : hi+1])
	}
	return out
}

// gaussianKernel1D returns a normalized 1-D Gaussian kernel of the given
// length (odd), with sigma chosen as length/3 the way a small vertical blur
// kernel is typically parameterized.
func gaussianKernel1D(length int) []float64 {
	if length%2 == 0 {
		length++
	}
	sigma := float64(length) / 3.0
	if sigma <= 0 {
		sigma = 1
	}
	half := length / 2
	k := make([]float64, length)
	var sum float64
	for i := -half; i <= half; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		k[i+half] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// otsuThreshold computes the Otsu binarization threshold (0-255) from an
// 8-bit intensity histogram. The returned value is the first intensity of
// the bright class: pixels strictly below it form the dark class.
func otsuThreshold(hist [256]int, total int) int {
	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i * c)
	}
	var sumB, wB float64
	var maxVar float64
	threshold := 0
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t * hist[t])
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		betweenVar := wB * wF * (mB - mF) * (mB - mF)
		if betweenVar > maxVar {
			maxVar = betweenVar
			threshold = t
		}
	}
	return threshold + 1
}

// connectedComponent performs a 4-connected flood fill over a boolean mask
// starting at (sx, sy), returning the pixel coordinates of the component.
func connectedComponent(mask [][]bool, visited [][]bool, sx, sy int) [][2]int {
	h := len(mask)
	if h == 0 {
		return nil
	}
	w := len(mask[0])
	stack := [][2]int{{sx, sy}}
	var points [][2]int
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p[0], p[1]
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		if visited[y][x] || !mask[y][x] {
			continue
		}
		visited[y][x] = true
		points = append(points, [2]int{x, y})
		stack = append(stack, [2]int{x + 1, y}, [2]int{x - 1, y}, [2]int{x, y + 1}, [2]int{x, y - 1})
	}
	return points
}

// allConnectedComponents returns every connected component of true pixels in
// mask, largest first.
func allConnectedComponents(mask [][]bool) [][][2]int {
	h := len(mask)
	if h == 0 {
		return nil
	}
	w := len(mask[0])
	visited := make([][]bool, h)
	for i := range visited {
		visited[i] = make([]bool, w)
	}
	var comps [][][2]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y][x] && !visited[y][x] {
				comps = append(comps, connectedComponent(mask, visited, x, y))
			}
		}
	}
	sort.Slice(comps, func(i, j int) bool { return len(comps[i]) > len(comps[j]) })
	return comps
}

// boundingBox returns (minX, minY, maxX, maxY) inclusive for a set of points.
func boundingBox(points [][2]int) (int, int, int, int) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY := points[0][0], points[0][1]
	maxX, maxY := points[0][0], points[0][1]
	for _, p := range points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	return minX, minY, maxX, maxY
}

// dilateMask grows a boolean mask by radius pixels (cheap square structuring
// element), used for grid-colour mask dilation before ink replacement.
func dilateMask(mask [][]bool, radius int) [][]bool {
	h := len(mask)
	if h == 0 {
		return mask
	}
	w := len(mask[0])
	out := make([][]bool, h)
	for i := range out {
		out[i] = make([]bool, w)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y][x] {
				continue
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					ny, nx := y+dy, x+dx
					if ny >= 0 && ny < h && nx >= 0 && nx < w {
						out[ny][nx] = true
					}
				}
			}
		}
	}
	return out
}

// erodeGray applies grayscale erosion (min filter) with a WxH rectangular
// structuring element.
func erodeGray(img [][]float64, kw, kh int) [][]float64 {
	return rankFilterGray(img, kw, kh, false)
}

// dilateGray applies grayscale dilation (max filter) with a WxH rectangular
// structuring element.
func dilateGray(img [][]float64, kw, kh int) [][]float64 {
	return rankFilterGray(img, kw, kh, true)
}

func rankFilterGray(img [][]float64, kw, kh int, useMax bool) [][]float64 {
	h := len(img)
	if h == 0 {
		return img
	}
	w := len(img[0])
	out := make([][]float64, h)
	halfW, halfH := kw/2, kh/2
	for y := 0; y < h; y++ {
		out[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			best := img[y][x]
			for dy := -halfH; dy <= halfH; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -halfW; dx <= halfW; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					v := img[ny][nx]
					if useMax && v > best {
						best = v
					}
					if !useMax && v < best {
						best = v
					}
				}
			}
			out[y][x] = best
		}
	}
	return out
}

// openGray applies grayscale morphological opening (erode then dilate).
func openGray(img [][]float64, kw, kh int) [][]float64 {
	return dilateGray(erodeGray(img, kw, kh), kw, kh)
}

// clamp255 clamps a float into the [0, 255] byte range.
func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// lanczosResample resamples x (uniformly spaced) to outLen samples using a
// 3-lobe Lanczos-windowed sinc kernel — a compact band-limited resampler
// that does not require pulling in an FFT library for resampling.
// clause via the polyphase-equivalent windowed-sinc formulation.
func lanczosResample(x []float64, outLen int) []float64 {
	n := len(x)
	if n == 0 || outLen <= 0 {
		return make([]float64, outLen)
	}
	if n == 1 {
		out := make([]float64, outLen)
		for i := range out {
			out[i] = x[0]
		}
		return out
	}
	const a = 3 // lobes
	out := make([]float64, outLen)
	scale := float64(n-1) / float64(maxInt(outLen-1, 1))
	for i := 0; i < outLen; i++ {
		srcPos := float64(i) * scale
		lo := int(math.Floor(srcPos)) - a + 1
		hi := int(math.Floor(srcPos)) + a
		var sum, wsum float64
		for t := lo; t <= hi; t++ {
			if t < 0 || t >= n {
				continue
			}
			d := srcPos - float64(t)
			w := lanczosKernel(d, a)
			sum += x[t] * w
			wsum += w
		}
		if wsum == 0 {
			idx := int(math.Round(srcPos))
			if idx < 0 {
				idx = 0
			}
			if idx >= n {
				idx = n - 1
			}
			out[i] = x[idx]
			continue
		}
		out[i] = sum / wsum
	}
	return out
}

func lanczosKernel(x float64, a int) float64 {
	if x == 0 {
		return 1
	}
	fa := float64(a)
	if x < -fa || x > fa {
		return 0
	}
	piX := math.Pi * x
	return fa * math.Sin(piX) * math.Sin(piX/fa) / (piX * piX)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
