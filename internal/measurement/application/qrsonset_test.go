package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecgdigitizer/internal/config"
)

func TestMsToSamples(t *testing.T) {
	assert.Equal(t, 100, msToSamples(200, 500))
	assert.Equal(t, 0, msToSamples(0, 500))
}

func TestCfgFS_DefaultsTo500(t *testing.T) {
	assert.Equal(t, 500.0, cfgFS(nil))

	lead := flatLead(10, 0)
	assert.Equal(t, 500.0, cfgFS(lead))

	lead2 := flatLead(10, 250)
	assert.Equal(t, 250.0, cfgFS(lead2))
}

func TestQRSOnsetOffset_BracketTheRPeak(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Measurement
	lead, rIdx := syntheticBeats(3, 800, 500)
	beats := computeBeatQRS(lead, rIdx, cfg)

	for i, b := range beats {
		assert.LessOrEqual(t, b.Onset, b.RIdx, "beat %d onset should precede or equal R", i)
		assert.GreaterOrEqual(t, b.Offset, b.RIdx, "beat %d offset should follow or equal R", i)
		assert.Equal(t, rIdx[i], b.RIdx)
	}
}
