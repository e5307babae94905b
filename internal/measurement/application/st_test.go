package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
)

func TestComputeST_BaselineSignalHasNearZeroDeviation(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement
	lead, rIdx := syntheticBeats(5, 800, 500)
	beats := computeBeatQRS(lead, rIdx, cfg)

	st := ComputeST(domain.LeadII, lead, beats, cfg)

	assert.Greater(t, st.Confidence, 0.0)
	assert.InDelta(t, 0.0, st.DeviationMV, 0.2)
	assert.Equal(t, domain.LeadII, st.Lead)
}

func TestComputeST_NoBeatsReturnsZeroConfidence(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement
	lead := flatLead(50, 500)

	st := ComputeST(domain.LeadII, lead, nil, cfg)

	assert.Equal(t, 0.0, st.Confidence)
	assert.Equal(t, 0.0, st.DeviationMV)
}

func TestComputeST_DetectsElevation(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement
	lead, rIdx := syntheticBeats(5, 800, 500)
	// Add an ST-segment bump shortly after each R peak, leaving the TP
	// baseline window (well before R) untouched.
	for _, r := range rIdx {
		for i := r; i < len(lead.AmplitudeMV); i++ {
			t := lead.TimeMs[i] - lead.TimeMs[r]
			if t > 200 {
				break
			}
			lead.AmplitudeMV[i] += gaussian(t, 90, 25, 0.4)
		}
	}
	beats := computeBeatQRS(lead, rIdx, cfg)

	st := ComputeST(domain.LeadII, lead, beats, cfg)

	assert.Greater(t, st.DeviationMV, 0.0)
}
