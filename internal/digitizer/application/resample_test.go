package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
)

func testDigitizerConfig() config.DigitizerConfig {
	return config.DefaultPipelineConfig().Digitizer
}

func TestCalibrateAndResample_EmptyTraceFails(t *testing.T) {
	cfg := testDigitizerConfig()
	grid := domain.DefaultGridModel(100, 100, 4, 25, 10)
	s := CalibrateAndResample(domain.LeadII, &ColumnTrace{}, grid, cfg)
	assert.True(t, s.Failed())
}

func TestCalibrateAndResample_InvalidGridFails(t *testing.T) {
	cfg := testDigitizerConfig()
	grid := &domain.GridModel{SmallSquarePx: 0}
	trace := &ColumnTrace{Y: []float64{1, 2, 3}, Confidence: []float64{1, 1, 1}}
	s := CalibrateAndResample(domain.LeadII, trace, grid, cfg)
	assert.True(t, s.Failed())
}

func TestCalibrateAndResample_FlatTraceYieldsZeroBaselineAmplitude(t *testing.T) {
	cfg := testDigitizerConfig()
	grid := domain.DefaultGridModel(500, 500, 4, 25, 10)
	n := 100
	y := make([]float64, n)
	conf := make([]float64, n)
	for i := range y {
		y[i] = 50
		conf[i] = 1
	}
	trace := &ColumnTrace{Y: y, Confidence: conf}

	s := CalibrateAndResample(domain.LeadII, trace, grid, cfg)

	require.False(t, s.Failed())
	assert.Equal(t, cfg.TargetSampleRateHz, s.TargetHz)
	assert.Equal(t, 1.0, s.Confidence)
	for _, amp := range s.AmplitudeMV {
		assert.InDelta(t, 0, amp, 1e-6)
	}
}

func TestOverallLeadConfidence_FractionAboveThreshold(t *testing.T) {
	assert.Equal(t, 0.5, overallLeadConfidence([]float64{0.2, 0.2, 0.05, 0.05}))
	assert.Equal(t, 0.0, overallLeadConfidence(nil))
	assert.Equal(t, 1.0, overallLeadConfidence([]float64{0.5, 0.9}))
}

func TestDetectAcquisitionType_ShortMedianDurationIsStitched(t *testing.T) {
	cfg := testDigitizerConfig()
	leads := []*domain.LeadSignal{
		{TimeMs: []float64{0, 1000}},
		{TimeMs: []float64{0, 1200}},
	}
	assert.Equal(t, domain.AcquisitionStitched, DetectAcquisitionType(leads, cfg))
}

func TestDetectAcquisitionType_LongMedianDurationIsSimultaneous(t *testing.T) {
	cfg := testDigitizerConfig()
	leads := []*domain.LeadSignal{
		{TimeMs: []float64{0, 5000}},
		{TimeMs: []float64{0, 5200}},
	}
	assert.Equal(t, domain.AcquisitionSimultaneous, DetectAcquisitionType(leads, cfg))
}

func TestDetectAcquisitionType_AllFailedLeadsDefaultsToStitched(t *testing.T) {
	cfg := testDigitizerConfig()
	leads := []*domain.LeadSignal{domain.NewFailedLeadSignal(domain.LeadII, "x")}
	assert.Equal(t, domain.AcquisitionStitched, DetectAcquisitionType(leads, cfg))
}
