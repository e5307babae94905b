package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecgdigitizer/internal/archetype/domain"
	cdomain "ecgdigitizer/internal/classifier/domain"
	"ecgdigitizer/internal/config"
	ddomain "ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

func testClassifierConfig() config.ClassifierConfig {
	return config.DefaultPipelineConfig().Classifier
}

func sampleLeadSignals() []*ddomain.LeadSignal {
	return []*ddomain.LeadSignal{
		{Lead: ddomain.LeadI, Confidence: 0.9},
		{Lead: ddomain.LeadII, Confidence: 0.95},
		{Lead: ddomain.LeadV1, Confidence: 0.0, FailureReason: "obscured by gridline"},
	}
}

func TestContractBuilderBuild_AssemblesFullContract(t *testing.T) {
	b := NewContractBuilder(testClassifierConfig())
	m := mdomain.Measurements{
		Rate: mdomain.MeasurementScalar{Value: 72, Confidence: 1},
		PR:   mdomain.MeasurementScalar{Value: 160, Confidence: 1},
		QRS:  mdomain.MeasurementScalar{Value: 90, Confidence: 1},
		QT:   mdomain.MeasurementScalar{Value: 380, Confidence: 1},
	}
	c := cdomain.Classification{
		PrimaryDiagnosis: "Normal sinus rhythm",
		Rhythm:           "Normal sinus rhythm",
		Differentials: []cdomain.Differential{
			{Key: "normal_sinus", Name: "Normal sinus rhythm", Probability: 0.9},
		},
	}
	grid := ddomain.DefaultGridModel(1000, 700, 10, 25, 10)

	contract := b.Build("sess-1", sampleLeadSignals(), grid, ddomain.AcquisitionSimultaneous, m, c, false, nil)

	assert.Equal(t, "sess-1", contract.SessionID)
	assert.Equal(t, 3, contract.ECGMetadata.LeadCount)
	assert.Equal(t, m, contract.Measurements)
	assert.Equal(t, "Normal sinus rhythm", contract.Interpretation.PrimaryDiagnosis)
	assert.NotEmpty(t, contract.ActivationSequence)
	assert.Equal(t, "normal_sinus", contract.MechanicalArchetype)
	assert.NotEmpty(t, contract.Uncertainty.UnderdeterminedParameters)
	assert.NotEmpty(t, contract.DisplayContract.EvidenceSupported)
	assert.NotEmpty(t, contract.DisplayContract.ModeledAssumption)
	assert.False(t, contract.PipelineDegraded)
	assert.Empty(t, contract.PipelineWarnings)
}

func TestContractBuilderBuild_PassesThroughDegradedAndWarnings(t *testing.T) {
	b := NewContractBuilder(testClassifierConfig())
	contract := b.Build("sess-2", nil, nil, ddomain.AcquisitionStitched, mdomain.Measurements{}, cdomain.Classification{}, true, []string{"low confidence in lead V3"})

	assert.True(t, contract.PipelineDegraded)
	assert.Equal(t, []string{"low confidence in lead V3"}, contract.PipelineWarnings)
}

func TestConductionSystemState_DerivesWPWFromDifferentials(t *testing.T) {
	b := NewContractBuilder(testClassifierConfig())
	m := &mdomain.Measurements{PR: mdomain.MeasurementScalar{Value: 110, Confidence: 1}}
	archetype := ArchetypeByID("WPW_typical")
	diffs := []cdomain.Differential{{Key: "wpw", Probability: 0.8}}

	state := b.conductionSystemState(m, archetype, diffs)

	assert.True(t, state.WPW)
	assert.Equal(t, -1.0, state.AccessoryPathwayVectorX)
	assert.Equal(t, 0.0, state.AccessoryPathwayVectorY)
	assert.Equal(t, 110.0, state.AVNodeDelayMs)
}

func TestConductionSystemState_FallsBackToArchetypeDefaultAVDelayWhenPRUnmeasured(t *testing.T) {
	b := NewContractBuilder(testClassifierConfig())
	m := &mdomain.Measurements{}
	archetype := ArchetypeByID("normal_sinus")

	state := b.conductionSystemState(m, archetype, nil)

	assert.Equal(t, archetype.DefaultAVNodeDelayMs, state.AVNodeDelayMs)
	assert.False(t, state.WPW)
	assert.False(t, state.LBBB)
	assert.False(t, state.RBBB)
}

func TestConductionSystemState_ThirdDegreeBlockClearsHisBundleIntact(t *testing.T) {
	b := NewContractBuilder(testClassifierConfig())
	m := &mdomain.Measurements{}
	archetype := ArchetypeByID("third_degree_block")
	diffs := []cdomain.Differential{{Key: "third_degree_av_block", Probability: 0.9}}

	state := b.conductionSystemState(m, archetype, diffs)

	assert.False(t, state.HisBundleIntact)
}

func TestConductionSystemState_AtrialFibrillationClearsInternodalTractsIntact(t *testing.T) {
	b := NewContractBuilder(testClassifierConfig())
	m := &mdomain.Measurements{}
	archetype := ArchetypeByID("afib_typical")
	diffs := []cdomain.Differential{{Key: "atrial_fibrillation", Probability: 0.9}}

	state := b.conductionSystemState(m, archetype, diffs)

	assert.False(t, state.InternodalTractsIntact)
}

func TestInjuryCurrentRegions_RequiresTwoLeadsAboveThreshold(t *testing.T) {
	m := &mdomain.Measurements{
		STDeviations: []mdomain.STDeviation{
			{Lead: ddomain.LeadII, DeviationMV: 0.2},
			{Lead: ddomain.LeadIII, DeviationMV: 0.15},
			{Lead: ddomain.LeadAVF, DeviationMV: 0.05},
		},
	}

	regions := injuryCurrentRegions(m, 0.1)

	require.Len(t, regions, 1)
	assert.Equal(t, "inferior", regions[0].Location)
	assert.Equal(t, 0.2, regions[0].MagnitudeMV)
}

func TestInjuryCurrentRegions_SingleLeadAboveThresholdIsNotEnough(t *testing.T) {
	m := &mdomain.Measurements{
		STDeviations: []mdomain.STDeviation{
			{Lead: ddomain.LeadV1, DeviationMV: 0.3},
		},
	}

	assert.Empty(t, injuryCurrentRegions(m, 0.1))
}

func TestInjuryCurrentRegions_MultipleTerritoriesEachReported(t *testing.T) {
	m := &mdomain.Measurements{
		STDeviations: []mdomain.STDeviation{
			{Lead: ddomain.LeadII, DeviationMV: 0.2},
			{Lead: ddomain.LeadIII, DeviationMV: 0.2},
			{Lead: ddomain.LeadV1, DeviationMV: 0.2},
			{Lead: ddomain.LeadV2, DeviationMV: 0.2},
		},
	}

	regions := injuryCurrentRegions(m, 0.1)

	var locations []string
	for _, r := range regions {
		locations = append(locations, r.Location)
	}
	assert.ElementsMatch(t, []string{"inferior", "anterior"}, locations)
}

func TestRepolarizationSummary_BuildsByLeadMaps(t *testing.T) {
	m := &mdomain.Measurements{
		STDeviations: []mdomain.STDeviation{
			{Lead: ddomain.LeadII, DeviationMV: 0.2},
			{Lead: ddomain.LeadIII, DeviationMV: 0.15},
		},
	}

	summary := repolarizationSummary(m, 0.1)

	assert.Equal(t, 0.2, summary.STDeviationByLead["II"])
	assert.Equal(t, 0.15, summary.RepolarizationGradientMap["III"])
	assert.NotEmpty(t, summary.InjuryCurrentRegions)
}

func TestECGMetadata_CopiesPerLeadConfidence(t *testing.T) {
	grid := ddomain.DefaultGridModel(1000, 700, 10, 25, 10)
	meta := ecgMetadata(sampleLeadSignals(), grid, ddomain.AcquisitionSimultaneous)

	require.Len(t, meta.DigitizationConfidence, 3)
	assert.Equal(t, "I", meta.DigitizationConfidence[0].LeadName)
	assert.Equal(t, 0.9, meta.DigitizationConfidence[0].Confidence)
	assert.Equal(t, "obscured by gridline", meta.DigitizationConfidence[2].FailureReason)
	assert.Equal(t, 3, meta.LeadCount)
	assert.Equal(t, "simultaneous", meta.AcquisitionType)
	assert.Equal(t, grid.PaperSpeedMMPerSec, meta.PaperSpeed)
}

func TestECGMetadata_NilGridLeavesPaperSpeedZero(t *testing.T) {
	meta := ecgMetadata(nil, nil, ddomain.AcquisitionStitched)
	assert.Equal(t, 0.0, meta.PaperSpeed)
	assert.Equal(t, 0, meta.LeadCount)
}

func TestInterpretation_PreservesFullDifferentialRecords(t *testing.T) {
	c := cdomain.Classification{
		PrimaryDiagnosis:        "Right bundle branch block",
		Rhythm:                  "Normal sinus rhythm",
		ConductionAbnormalities: []string{"Right bundle branch block"},
		Differentials: []cdomain.Differential{
			{
				Key: "rbbb", Name: "Right bundle branch block", Probability: 0.8,
				Tier: cdomain.TierHigh, ICD10: "I45.10",
				Criteria:       []cdomain.Criterion{{Name: "qrs_duration", Met: true, Detail: "120ms"}},
				AbsentCriteria: []string{"rsr_prime_v1"},
			},
			{Name: "Normal sinus rhythm", Probability: 0.3, Tier: cdomain.TierPossible},
		},
	}

	i := interpretation(c)

	require.Len(t, i.Differentials, 2)
	assert.Equal(t, "Right bundle branch block", i.Differentials[0].Name)
	assert.Equal(t, 0.8, i.Differentials[0].Probability)
	assert.Equal(t, cdomain.TierHigh, i.Differentials[0].Tier)
	assert.Equal(t, "I45.10", i.Differentials[0].ICD10)
	assert.Equal(t, []cdomain.Criterion{{Name: "qrs_duration", Met: true, Detail: "120ms"}}, i.Differentials[0].Criteria)
	assert.Equal(t, []string{"rsr_prime_v1"}, i.Differentials[0].AbsentCriteria)
	assert.Equal(t, "Normal sinus rhythm", i.Differentials[1].Name)
	assert.Equal(t, []string{"Right bundle branch block"}, i.ConductionAbnormalities)
}

func TestDisplayContract_IncludesEvidenceAndModeledAssumptions(t *testing.T) {
	archetype := ArchetypeByID("LVH_typical")
	m := &mdomain.Measurements{
		PR:   mdomain.MeasurementScalar{Value: 160, Unit: "ms", Confidence: 0.9},
		Rate: mdomain.MeasurementScalar{Value: 72, Unit: "bpm", Confidence: 0.1},
	}

	dc := displayContract(archetype, m)

	require.Len(t, dc.EvidenceSupported, 1)
	assert.Contains(t, dc.EvidenceSupported[0], "pr: 160")
	assert.Contains(t, dc.EvidenceSupported[0], "confidence 0.90")
	require.NotEmpty(t, dc.ModeledAssumption)
	assert.Contains(t, dc.ModeledAssumption[0], archetype.Label)
}

func TestBuildFrontendView_FoldsStructureIDs(t *testing.T) {
	steps := []domain.ActivationStep{
		{Structure: "sa_node", OnsetMs: 0, OffsetMs: 10},
		{Structure: "purkinje_lv", OnsetMs: 80, OffsetMs: 100},
		{Structure: "purkinje_rv", OnsetMs: 80, OffsetMs: 100},
		{Structure: "septum", OnsetMs: 80, OffsetMs: 90},
		{Structure: "lv_free_wall", OnsetMs: 90, OffsetMs: 140},
		{Structure: "rv_free_wall", OnsetMs: 90, OffsetMs: 140},
		{Structure: "av_node", OnsetMs: 40, OffsetMs: 160},
		{Structure: "his_bundle", OnsetMs: 160, OffsetMs: 170},
		{Structure: "left_bundle", OnsetMs: 170, OffsetMs: 175},
		{Structure: "right_bundle", OnsetMs: 170, OffsetMs: 175},
	}

	view := BuildFrontendView(mdomain.Measurements{Rate: mdomain.MeasurementScalar{Value: 60, Confidence: 1}}, steps)

	byStructure := make(map[string]int)
	for _, e := range view.ActivationSequence {
		byStructure[e.StructureID]++
	}
	assert.Equal(t, 5, byStructure["purkinje"])
	assert.Equal(t, 1, byStructure["sa_node"])
	assert.Equal(t, 1, byStructure["av_node"])
	assert.Equal(t, 1, byStructure["his_bundle"])
	assert.Equal(t, 1, byStructure["left_bundle"])
	assert.Equal(t, 1, byStructure["right_bundle"])
}

func TestBuildFrontendView_ComputesCardiacCycleDurationFromRate(t *testing.T) {
	view := BuildFrontendView(mdomain.Measurements{Rate: mdomain.MeasurementScalar{Value: 60, Confidence: 1}}, nil)
	assert.Equal(t, 1000, view.CardiacCycleDurationMs)
}

func TestBuildFrontendView_ZeroRateYieldsZeroDuration(t *testing.T) {
	view := BuildFrontendView(mdomain.Measurements{}, nil)
	assert.Equal(t, 0, view.CardiacCycleDurationMs)
}

func TestBuildFrontendView_PhaseBoundariesChainFromIntervals(t *testing.T) {
	m := mdomain.Measurements{
		PR:  mdomain.MeasurementScalar{Value: 160, Confidence: 1},
		QRS: mdomain.MeasurementScalar{Value: 90, Confidence: 1},
		QT:  mdomain.MeasurementScalar{Value: 380, Confidence: 1},
		PWaves: []mdomain.PWaveDetail{
			{Lead: ddomain.LeadII, DurationMs: 90},
		},
	}

	view := BuildFrontendView(m, nil)

	assert.Equal(t, 0.0, view.PhaseBoundaries.PWave.StartMs)
	assert.Equal(t, 90.0, view.PhaseBoundaries.PWave.EndMs)
	assert.Equal(t, 90.0, view.PhaseBoundaries.PRSegment.StartMs)
	assert.Equal(t, 160.0, view.PhaseBoundaries.PRSegment.EndMs)
	assert.Equal(t, 160.0, view.PhaseBoundaries.QRS.StartMs)
	assert.Equal(t, 250.0, view.PhaseBoundaries.QRS.EndMs)
	assert.Equal(t, 250.0, view.PhaseBoundaries.STSegment.StartMs)
	assert.Equal(t, 540.0, view.PhaseBoundaries.STSegment.EndMs)
	assert.Equal(t, 540.0, view.PhaseBoundaries.TWave.StartMs)
}

func TestDifferentialProbability_ReturnsZeroWhenAbsent(t *testing.T) {
	assert.Equal(t, 0.0, differentialProbability(nil, "lbbb"))
	assert.Equal(t, 0.7, differentialProbability([]cdomain.Differential{{Key: "lbbb", Probability: 0.7}}, "lbbb"))
}
