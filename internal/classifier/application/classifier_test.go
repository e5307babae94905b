package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecgdigitizer/internal/classifier/domain"
	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/logging"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

func TestClassifierRun_NormalSinusIsPrimaryForCleanTracing(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Classifier
	c := NewClassifier(cfg, logging.NewNoOpLogger())

	classification := c.Run(normalSinusMeasurements())

	assert.Equal(t, "Normal sinus rhythm", classification.PrimaryDiagnosis)
	assert.Equal(t, "Normal sinus rhythm", classification.Rhythm)
	assert.Empty(t, classification.ConductionAbnormalities)
}

func TestClassifierRun_DifferentialsSortedDescending(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Classifier
	c := NewClassifier(cfg, logging.NewNoOpLogger())

	classification := c.Run(normalSinusMeasurements())

	require.NotEmpty(t, classification.Differentials)
	for i := 1; i < len(classification.Differentials); i++ {
		assert.GreaterOrEqual(t, classification.Differentials[i-1].Probability, classification.Differentials[i].Probability)
	}
}

func TestClassifierRun_WideQRSYieldsConductionAbnormality(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Classifier
	c := NewClassifier(cfg, logging.NewNoOpLogger())

	m := normalSinusMeasurements()
	m.QRS.Value = 150

	classification := c.Run(m)

	assert.Contains(t, classification.ConductionAbnormalities, "Right bundle branch block")

	var rbbb *domain.Differential
	for i := range classification.Differentials {
		if classification.Differentials[i].Key == "rbbb" {
			rbbb = &classification.Differentials[i]
		}
	}
	require.NotNil(t, rbbb, "rbbb differential must be present in the ranked list")
	assert.Equal(t, domain.TierModerate, rbbb.Tier)
	assert.NotEmpty(t, rbbb.ICD10)
	assert.Contains(t, rbbb.AbsentCriteria, "early_precordial_transition")
}

func TestClassifierRun_FallsBackWhenNoCandidateClearsThreshold(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Classifier
	cfg.MinCandidateProbability = 2.0 // impossible to clear
	c := NewClassifier(cfg, logging.NewNoOpLogger())

	classification := c.Run(&mdomain.Measurements{})

	assert.Equal(t, fallbackPrimaryDiagnosis, classification.PrimaryDiagnosis)
	assert.Empty(t, classification.Differentials)
}

func TestSanitizeDisplayName_StripsDiagnoseSubstring(t *testing.T) {
	assert.Equal(t, "used to identify something", sanitizeDisplayName("used to diagnose something"))
	assert.Equal(t, "Normal sinus rhythm", sanitizeDisplayName("Normal sinus rhythm"))
}

func TestNewClassifier_NilLoggerDefaultsToNoOp(t *testing.T) {
	cfg := config.DefaultPipelineConfig().Classifier
	c := NewClassifier(cfg, nil)
	require.NotNil(t, c.log)
	assert.NotPanics(t, func() { c.Run(&mdomain.Measurements{}) })
}
