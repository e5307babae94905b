package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecgdigitizer/internal/config"
)

func TestComputePR_WithinPhysiologicRange(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement
	lead, rIdx := syntheticBeats(5, 800, 500)
	beats := computeBeatQRS(lead, rIdx, cfg)

	scalar := ComputePR(lead, beats, cfg)

	assert.Greater(t, scalar.Confidence, 0.0)
	assert.Greater(t, scalar.Value, cfg.PRMinMs)
	assert.Less(t, scalar.Value, cfg.PRMaxMs)
	assert.Equal(t, "pr_baseline_deviation_backsearch", scalar.Method)
}

func TestComputePR_NoBeatsReturnsZeroScalar(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement
	lead := flatLead(100, 500)

	scalar := ComputePR(lead, nil, cfg)

	assert.Equal(t, 0.0, scalar.Confidence)
	assert.Equal(t, 0.0, scalar.Value)
}
