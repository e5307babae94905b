package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecgdigitizer/internal/classifier/domain"
	ddomain "ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

func normalSinusMeasurements() *mdomain.Measurements {
	return &mdomain.Measurements{
		Rate:             mdomain.MeasurementScalar{Value: 72, Confidence: 1},
		RhythmRegularity: mdomain.RhythmRegular,
		QRS:              mdomain.MeasurementScalar{Value: 90, Confidence: 1},
		PR:               mdomain.MeasurementScalar{Value: 160, Confidence: 1},
		BeatCount:        6,
	}
}

func TestCheckNormalSinus_HighGateWhenCriteriaMet(t *testing.T) {
	cr := checkNormalSinus(normalSinusMeasurements())
	assert.Equal(t, "normal_sinus", cr.Key)
	assert.Equal(t, 0.9, cr.BaseProbability)
	assert.Empty(t, cr.AbsentCriteria)
}

func TestCheckNormalSinus_LowGateWithoutBeats(t *testing.T) {
	m := normalSinusMeasurements()
	m.BeatCount = 0
	cr := checkNormalSinus(m)
	assert.InDelta(t, 0.1, cr.BaseProbability, 0.001)
}

func TestCheckSinusTachycardia_GatesOnRateAbove100(t *testing.T) {
	m := normalSinusMeasurements()
	m.Rate.Value = 140
	cr := checkSinusTachycardia(m)
	assert.Greater(t, cr.BaseProbability, 0.5)
}

func TestCheckAtrialFibrillation_GatesOnIrregularRhythm(t *testing.T) {
	m := normalSinusMeasurements()
	m.RhythmRegularity = mdomain.RhythmIrregularlyIrregular
	cr := checkAtrialFibrillation(m)
	assert.Greater(t, cr.BaseProbability, 0.0)
}

func TestCheckRBBB_GatesOnWideQRSAndEarlyTransition(t *testing.T) {
	m := normalSinusMeasurements()
	m.QRS.Value = 140
	m.PrecordialTransitionLead = ddomain.LeadV1
	cr := checkRBBB(m)
	assert.Equal(t, 0.8, cr.BaseProbability)
}

func TestCheckLVH_UsesVoltageCriteriaFlags(t *testing.T) {
	m := normalSinusMeasurements()
	m.SokolowLyonLVH = true
	cr := checkLVH(m)
	assert.Equal(t, 0.45, cr.BaseProbability)
}

func TestCheckInferiorSTEMI_RequiresTwoLeadsElevated(t *testing.T) {
	m := normalSinusMeasurements()
	m.STDeviations = []mdomain.STDeviation{
		{Lead: ddomain.LeadII, DeviationMV: 0.2, Confidence: 1},
		{Lead: ddomain.LeadIII, DeviationMV: 0.15, Confidence: 1},
		{Lead: ddomain.LeadAVF, DeviationMV: 0.0, Confidence: 1},
	}
	cr := checkInferiorSTEMI(m)
	assert.InDelta(t, 0.6, cr.BaseProbability, 0.001)
}

func TestGateProbability_EmptyCriteriaIsZero(t *testing.T) {
	assert.Equal(t, 0.0, gateProbability(nil, 0.9))
}

func TestAbsentNames(t *testing.T) {
	names := absentNames([]domain.Criterion{})
	assert.Empty(t, names)

	names = absentNames([]domain.Criterion{{Name: "a", Met: true}, {Name: "b", Met: false}})
	assert.Equal(t, []string{"b"}, names)
}
