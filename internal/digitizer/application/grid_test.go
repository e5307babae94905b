package application

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecgdigitizer/internal/digitizer/domain"
	"ecgdigitizer/internal/logging"
)

func flatGray(w, h int, v float64) [][]float64 {
	gray := make([][]float64, h)
	for y := range gray {
		gray[y] = make([]float64, w)
		for x := range gray[y] {
			gray[y][x] = v
		}
	}
	return gray
}

func TestCharacterizeGrid_FlatImageFallsBackToFixedPitch(t *testing.T) {
	cfg := testDigitizerConfig()
	gray := flatGray(40, 40, 128)

	grid, warnings := CharacterizeGrid(gray, 40, 40, cfg, logging.NewNoOpLogger())

	assert.Equal(t, cfg.FallbackPitchPx, grid.SmallSquarePx)
	assert.Equal(t, cfg.FallbackPitchPx*cfg.LargeSquareRatio, grid.LargeSquarePx)
	assert.NotEmpty(t, warnings)
}

func TestGridPitchFromFFT_DetectsKnownPeriod(t *testing.T) {
	cfg := testDigitizerConfig()
	h, w := 120, 10
	period := 8.0
	gray := make([][]float64, h)
	for y := 0; y < h; y++ {
		gray[y] = make([]float64, w)
		v := 128 + 50*math.Sin(2*math.Pi*float64(y)/period)
		for x := 0; x < w; x++ {
			gray[y][x] = v
		}
	}

	pitch, ok := gridPitchFromFFT(gray, w, h, cfg)

	require.True(t, ok)
	assert.InDelta(t, period, pitch, 1.0)
}

func TestGridPitchFromFFT_ZeroDimensionsFail(t *testing.T) {
	_, ok := gridPitchFromFFT(nil, 0, 0, testDigitizerConfig())
	assert.False(t, ok)
}

func TestGridPitchFromHough_FlatImageHasNoEdges(t *testing.T) {
	cfg := testDigitizerConfig()
	gray := flatGray(40, 40, 128)
	_, ok := gridPitchFromHough(gray, 40, 40, cfg)
	assert.False(t, ok)
}

func TestDetectCalibrationPulse_FlatImageNotDetected(t *testing.T) {
	cfg := testDigitizerConfig()
	gray := flatGray(100, 100, 200)
	grid := domain.DefaultGridModel(100, 100, 4, 25, 10)
	_, ok, _ := DetectCalibrationPulse(gray, 100, 100, grid, cfg)
	assert.False(t, ok)
}
