package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
)

func TestComputeVoltageCriteria_TriggersAllThreeAtHighVoltage(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement

	leads := map[domain.LeadName]*domain.LeadSignal{
		domain.LeadV1:  {AmplitudeMV: []float64{0.9, -2.0}},
		domain.LeadV5:  {AmplitudeMV: []float64{2.0, -0.2}},
		domain.LeadV6:  {AmplitudeMV: []float64{1.8, -0.1}},
		domain.LeadAVL: {AmplitudeMV: []float64{1.5, -0.1}},
		domain.LeadV3:  {AmplitudeMV: []float64{0.5, -1.0}},
	}

	result := ComputeVoltageCriteria(leads, cfg)

	assert.True(t, result.SokolowLyonLVH)
	assert.True(t, result.CornellLVH)
	assert.True(t, result.RVH)
	assert.Contains(t, result.SokolowLyonDetail, "threshold")
}

func TestComputeVoltageCriteria_AbsentLeadsTreatedAsZero(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement

	result := ComputeVoltageCriteria(map[domain.LeadName]*domain.LeadSignal{}, cfg)

	assert.False(t, result.SokolowLyonLVH)
	assert.False(t, result.CornellLVH)
	assert.False(t, result.RVH)
}

func TestComputeVoltageCriteria_FailedLeadTreatedAsZero(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement
	leads := map[domain.LeadName]*domain.LeadSignal{
		domain.LeadV1: domain.NewFailedLeadSignal(domain.LeadV1, "segmentation failed"),
	}

	result := ComputeVoltageCriteria(leads, cfg)

	assert.False(t, result.RVH)
}
