package application

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanStddevMedian(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 3.0, mean(xs))
	assert.InDelta(t, math.Sqrt(2), stddev(xs), 1e-9)
	assert.Equal(t, 3.0, median(xs))
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 0.0, mean(nil))
	assert.Equal(t, 0.0, stddev(nil))
	assert.Equal(t, 0.0, median(nil))
}

func TestSubtractMean_ZerosOutTheMean(t *testing.T) {
	out := subtractMean([]float64{1, 2, 3})
	assert.InDelta(t, 0.0, mean(out), 1e-9)
	assert.Equal(t, []float64{-1, 0, 1}, out)
}

func TestMovingAverage_ConstantSignalIsUnchanged(t *testing.T) {
	xs := []float64{5, 5, 5, 5, 5}
	out := movingAverage(xs, 3)
	assert.Equal(t, xs, out)
}

func TestMovingAverage_SmoothsImpulse(t *testing.T) {
	xs := []float64{0, 0, 10, 0, 0}
	out := movingAverage(xs, 3)
	assert.InDelta(t, 10.0/3, out[2], 1e-9)
	assert.Less(t, out[2], xs[2])
}

func TestMedianFilter_RemovesImpulseNoise(t *testing.T) {
	xs := []float64{1, 1, 100, 1, 1}
	out := medianFilter(xs, 3)
	assert.Equal(t, 1.0, out[2])
}

func TestMedianFilter_EvenWidthBecomesOdd(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	out := medianFilter(xs, 4)
	assert.Len(t, out, 5)
}

func TestGaussianKernel1D_SumsToOneAndIsSymmetric(t *testing.T) {
	k := gaussianKernel1D(5)
	require := 0.0
	for _, v := range k {
		require += v
	}
	assert.InDelta(t, 1.0, require, 1e-9)
	assert.InDelta(t, k[0], k[len(k)-1], 1e-12)
	assert.Equal(t, k[len(k)/2], maxOf(k))
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs {
		if x > m {
			m = x
		}
	}
	return m
}

func TestOtsuThreshold_SeparatesTwoClusters(t *testing.T) {
	var hist [256]int
	for i := 0; i < 100; i++ {
		hist[10]++
	}
	for i := 0; i < 100; i++ {
		hist[250]++
	}
	th := otsuThreshold(hist, 200)
	assert.Greater(t, th, 10)
	assert.Less(t, th, 250)
}

func TestConnectedComponent_FindsAllTruePixelsIn4Neighborhood(t *testing.T) {
	mask := [][]bool{
		{true, true, false},
		{false, true, false},
		{false, false, true},
	}
	visited := make([][]bool, len(mask))
	for i := range visited {
		visited[i] = make([]bool, len(mask[0]))
	}
	pts := connectedComponent(mask, visited, 0, 0)
	assert.Len(t, pts, 3) // (0,0),(1,0),(1,1) reachable; (2,2) is isolated
}

func TestAllConnectedComponents_SortedLargestFirst(t *testing.T) {
	mask := [][]bool{
		{true, true, false},
		{true, true, false},
		{false, false, true},
	}
	comps := allConnectedComponents(mask)
	require := len(comps)
	assert.Equal(t, 2, require)
	assert.True(t, len(comps[0]) >= len(comps[1]))
	assert.Len(t, comps[0], 4)
	assert.Len(t, comps[1], 1)
}

func TestBoundingBox_CoversAllPoints(t *testing.T) {
	minX, minY, maxX, maxY := boundingBox([][2]int{{1, 2}, {5, 0}, {3, 9}})
	assert.Equal(t, 1, minX)
	assert.Equal(t, 0, minY)
	assert.Equal(t, 5, maxX)
	assert.Equal(t, 9, maxY)
}

func TestBoundingBox_EmptyIsZero(t *testing.T) {
	minX, minY, maxX, maxY := boundingBox(nil)
	assert.Equal(t, 0, minX)
	assert.Equal(t, 0, minY)
	assert.Equal(t, 0, maxX)
	assert.Equal(t, 0, maxY)
}

func TestDilateMask_GrowsSinglePixelByRadius(t *testing.T) {
	mask := [][]bool{
		{false, false, false},
		{false, true, false},
		{false, false, false},
	}
	out := dilateMask(mask, 1)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.True(t, out[y][x], "expected (%d,%d) true", x, y)
		}
	}
}

func TestErodeDilateGray_RoundTripOnFlatImage(t *testing.T) {
	img := [][]float64{{5, 5, 5}, {5, 5, 5}, {5, 5, 5}}
	assert.Equal(t, img, erodeGray(img, 3, 3))
	assert.Equal(t, img, dilateGray(img, 3, 3))
}

func TestErodeGray_TakesMinInWindow(t *testing.T) {
	img := [][]float64{{5, 5, 5}, {5, 0, 5}, {5, 5, 5}}
	out := erodeGray(img, 3, 3)
	assert.Equal(t, 0.0, out[1][1])
	assert.Equal(t, 0.0, out[0][0])
}

func TestDilateGray_TakesMaxInWindow(t *testing.T) {
	img := [][]float64{{0, 0, 0}, {0, 9, 0}, {0, 0, 0}}
	out := dilateGray(img, 3, 3)
	assert.Equal(t, 9.0, out[0][0])
}

func TestClamp255_ClampsBothEnds(t *testing.T) {
	assert.Equal(t, uint8(0), clamp255(-10))
	assert.Equal(t, uint8(255), clamp255(300))
	assert.Equal(t, uint8(128), clamp255(128))
}

func TestLanczosResample_PreservesEndpointsAndLength(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	out := lanczosResample(x, 10)
	assert.Len(t, out, 10)
	assert.InDelta(t, 0, out[0], 1e-6)
	assert.InDelta(t, 4, out[9], 1e-6)
}

func TestLanczosResample_SingleSampleInputRepeats(t *testing.T) {
	out := lanczosResample([]float64{7}, 5)
	for _, v := range out {
		assert.Equal(t, 7.0, v)
	}
}

func TestLanczosResample_EmptyInputYieldsZeros(t *testing.T) {
	out := lanczosResample(nil, 5)
	assert.Equal(t, make([]float64, 5), out)
}

func TestMaxMinInt(t *testing.T) {
	assert.Equal(t, 5, maxInt(5, 3))
	assert.Equal(t, 3, maxInt(3, 3))
	assert.Equal(t, 2, minInt(2, 9))
}

func TestClampFloat_ClampsToRange(t *testing.T) {
	assert.Equal(t, 1.0, clampFloat(-5, 1, 10))
	assert.Equal(t, 10.0, clampFloat(50, 1, 10))
	assert.Equal(t, 5.0, clampFloat(5, 1, 10))
}

func TestRealDFTMagnitude_FlatSignalHasNoEnergyAboveDC(t *testing.T) {
	x := make([]float64, 16)
	for i := range x {
		x[i] = 3
	}
	mag := realDFTMagnitude(x)
	assert.InDelta(t, 48.0, mag[0], 1e-9) // DC bin = sum of samples
	for _, m := range mag[1:] {
		assert.InDelta(t, 0, m, 1e-6)
	}
}
