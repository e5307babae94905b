package application

import "math"

type point struct{ X, Y float64 }

// orderQuadCorners orders four corner points as
// top-left (min x+y), bottom-right (max x+y), top-right (min y-x),
// bottom-left (max y-x).
func orderQuadCorners(pts [4]point) (tl, tr, br, bl point) {
	tl, br, tr, bl = pts[0], pts[0], pts[0], pts[0]
	minSum, maxSum := pts[0].X+pts[0].Y, pts[0].X+pts[0].Y
	minDiff, maxDiff := pts[0].Y-pts[0].X, pts[0].Y-pts[0].X
	for _, p := range pts {
		sum := p.X + p.Y
		diff := p.Y - p.X
		if sum < minSum {
			minSum = sum
			tl = p
		}
		if sum > maxSum {
			maxSum = sum
			br = p
		}
		if diff < minDiff {
			minDiff = diff
			tr = p
		}
		if diff > maxDiff {
			maxDiff = diff
			bl = p
		}
	}
	return tl, tr, br, bl
}

func dist(a, b point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// targetRectDims computes the output rectangle size as the longer of the
// two opposite-edge lengths.
func targetRectDims(tl, tr, br, bl point) (w, h int) {
	topW := dist(tl, tr)
	bottomW := dist(bl, br)
	leftH := dist(tl, bl)
	rightH := dist(tr, br)
	w = int(math.Round(math.Max(topW, bottomW)))
	h = int(math.Round(math.Max(leftH, rightH)))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// homography solves the 3x3 projective transform mapping four source points
// to four destination points, via the standard 8-unknown linear system
// solved by Gaussian elimination (no external linear-algebra dependency
// needed for a fixed 8x8 system).
type homography [9]float64

func computeHomography(src, dst [4]point) homography {
	// Build the 8x8 system A*h = b for h = [a,b,c,d,e,f,g,h2] with the
	// convention x' = (a*x+b*y+c)/(g*x+h2*y+1), y' = (d*x+e*y+f)/(g*x+h2*y+1).
	var a [8][8]float64
	var bvec [8]float64
	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y
		r1 := 2 * i
		r2 := 2*i + 1
		a[r1] = [8]float64{x, y, 1, 0, 0, 0, -x * xp, -y * xp}
		bvec[r1] = xp
		a[r2] = [8]float64{0, 0, 0, x, y, 1, -x * yp, -y * yp}
		bvec[r2] = yp
	}
	h := solve8(a, bvec)
	return homography{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}
}

func solve8(a [8][8]float64, b [8]float64) [8]float64 {
	n := 8
	// Augmented matrix Gaussian elimination with partial pivoting.
	m := make([][]float64, n)
	for i := 0; i < n; i++ {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i][:])
		m[i][n] = b[i]
	}
	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		m[col], m[pivot] = m[pivot], m[col]
		if math.Abs(m[col][col]) < 1e-12 {
			continue
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}
	var out [8]float64
	for i := 0; i < n; i++ {
		if math.Abs(m[i][i]) > 1e-12 {
			out[i] = m[i][n] / m[i][i]
		}
	}
	return out
}

// apply maps a source point through the homography.
func (h homography) apply(x, y float64) (float64, float64) {
	w := h[6]*x + h[7]*y + h[8]
	if w == 0 {
		w = 1
	}
	return (h[0]*x + h[1]*y + h[2]) / w, (h[3]*x + h[4]*y + h[5]) / w
}

// invert computes the inverse of a 3x3 homography via the adjugate formula.
func (h homography) invert() homography {
	a, b, c := h[0], h[1], h[2]
	d, e, f := h[3], h[4], h[5]
	g, i2, j := h[6], h[7], h[8]
	det := a*(e*j-f*i2) - b*(d*j-f*g) + c*(d*i2-e*g)
	if det == 0 {
		return h
	}
	inv := homography{
		(e*j - f*i2) / det, (c*i2 - b*j) / det, (b*f - c*e) / det,
		(f*g - d*j) / det, (a*j - c*g) / det, (c*d - a*f) / det,
		(d*i2 - e*g) / det, (b*g - a*i2) / det, (a*e - b*d) / det,
	}
	return inv
}
