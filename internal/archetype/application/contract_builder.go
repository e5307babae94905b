package application

import (
	"fmt"
	"math"

	"ecgdigitizer/internal/archetype/domain"
	cdomain "ecgdigitizer/internal/classifier/domain"
	"ecgdigitizer/internal/config"
	ddomain "ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// ContractBuilder assembles the canonical VisualizationContract from a
// digitizer result, measurements, and classification.
type ContractBuilder struct {
	cfg config.ClassifierConfig
}

// NewContractBuilder builds a ContractBuilder bound to the classifier
// thresholds the uncertainty engine and conduction-system derivation share.
func NewContractBuilder(cfg config.ClassifierConfig) *ContractBuilder {
	return &ContractBuilder{cfg: cfg}
}

func differentialProbability(diffs []cdomain.Differential, key string) float64 {
	for _, d := range diffs {
		if d.Key == key {
			return d.Probability
		}
	}
	return 0
}

func (b *ContractBuilder) conductionSystemState(m *mdomain.Measurements, archetype domain.Archetype, diffs []cdomain.Differential) domain.ConductionSystemState {
	gate := b.cfg.ConductionAbnormalityMinProbability
	lbbb := differentialProbability(diffs, "lbbb") >= gate
	rbbb := differentialProbability(diffs, "rbbb") >= gate
	wpw := differentialProbability(diffs, "wpw") >= gate
	thirdDegree := differentialProbability(diffs, "third_degree_av_block") >= gate
	afib := differentialProbability(diffs, "atrial_fibrillation") >= gate

	avDelay := archetype.DefaultAVNodeDelayMs
	if m.PR.Confidence > 0 {
		avDelay = m.PR.Value
	}

	state := domain.ConductionSystemState{
		SANodeRate:             m.Rate.Value,
		InternodalTractsIntact: !afib,
		AVNodeDelayMs:          avDelay,
		HisBundleIntact:        !thirdDegree,
		LBBB:                   lbbb,
		RBBB:                   rbbb,
		WPW:                    wpw,
	}
	if wpw {
		state.AccessoryPathwayVectorX = -1
		state.AccessoryPathwayVectorY = 0
		state.AccessoryPathwayVectorZ = 0
	}
	return state
}

var inferiorLeads = []ddomain.LeadName{ddomain.LeadII, ddomain.LeadIII, ddomain.LeadAVF}
var anteriorLeads = []ddomain.LeadName{ddomain.LeadV1, ddomain.LeadV2, ddomain.LeadV3, ddomain.LeadV4}
var lateralLeads = []ddomain.LeadName{ddomain.LeadI, ddomain.LeadAVL, ddomain.LeadV5, ddomain.LeadV6}

// injuryCurrentRegions scans ST deviations by anatomical lead-territory
// grouping.
func injuryCurrentRegions(m *mdomain.Measurements, stemiThreshold float64) []domain.InjuryCurrentRegion {
	scan := func(leads []ddomain.LeadName) (int, float64) {
		count := 0
		maxV := 0.0
		for _, l := range leads {
			if st := m.STByLead(l); st != nil && st.DeviationMV > stemiThreshold {
				count++
				if st.DeviationMV > maxV {
					maxV = st.DeviationMV
				}
			}
		}
		return count, maxV
	}

	var regions []domain.InjuryCurrentRegion
	if count, maxV := scan(inferiorLeads); count >= 2 {
		regions = append(regions, domain.InjuryCurrentRegion{Location: "inferior", MagnitudeMV: maxV})
	}
	if count, maxV := scan(anteriorLeads); count >= 2 {
		regions = append(regions, domain.InjuryCurrentRegion{Location: "anterior", MagnitudeMV: maxV})
	}
	if count, maxV := scan(lateralLeads); count >= 2 {
		regions = append(regions, domain.InjuryCurrentRegion{Location: "lateral", MagnitudeMV: maxV})
	}
	return regions
}

func repolarizationSummary(m *mdomain.Measurements, stemiThreshold float64) domain.RepolarizationSummary {
	byLead := make(map[string]float64, len(m.STDeviations))
	gradient := make(map[string]float64, len(m.STDeviations))
	for _, st := range m.STDeviations {
		byLead[string(st.Lead)] = st.DeviationMV
		gradient[string(st.Lead)] = st.DeviationMV
	}
	return domain.RepolarizationSummary{
		STDeviationByLead:         byLead,
		RepolarizationGradientMap: gradient,
		InjuryCurrentRegions:      injuryCurrentRegions(m, stemiThreshold),
	}
}

func ecgMetadata(leads []*ddomain.LeadSignal, grid *ddomain.GridModel, acquisitionType ddomain.AcquisitionType) domain.ECGMetadata {
	confidences := make([]domain.DigitizationConfidence, 0, len(leads))
	for _, l := range leads {
		confidences = append(confidences, domain.DigitizationConfidence{
			LeadName:      string(l.Lead),
			Confidence:    l.Confidence,
			FailureReason: l.FailureReason,
		})
	}
	meta := domain.ECGMetadata{
		LeadCount:              len(leads),
		AcquisitionType:        string(acquisitionType),
		DigitizationConfidence: confidences,
	}
	if grid != nil {
		meta.PaperSpeed = grid.PaperSpeedMMPerSec
		meta.AmplitudeScale = grid.AmplitudeScaleMMPerMV
	}
	return meta
}

func interpretation(c cdomain.Classification) domain.Interpretation {
	return domain.Interpretation{
		PrimaryDiagnosis:        c.PrimaryDiagnosis,
		Differentials:           c.Differentials,
		Rhythm:                  c.Rhythm,
		ConductionAbnormalities: c.ConductionAbnormalities,
	}
}

func displayContract(archetype domain.Archetype, m *mdomain.Measurements) domain.DisplayContract {
	evidence := evidenceSupportedParameters(m)
	modeled := []string{
		fmt.Sprintf("activation sequence is a %s archetype reconstruction, not a direct measurement", archetype.Label),
		"propagation directions and conduction-system internals are modeled, not measured",
		"injury-current anatomic locations are inferred from conventional lead-territory mapping",
	}
	return domain.DisplayContract{
		EvidenceSupported: evidence,
		ModeledAssumption: modeled,
	}
}

// Build assembles the full canonical contract. It never returns a
// nil or partially-constructed record.
func (b *ContractBuilder) Build(sessionID string, leads []*ddomain.LeadSignal, grid *ddomain.GridModel, acquisitionType ddomain.AcquisitionType, m mdomain.Measurements, c cdomain.Classification, degraded bool, warnings []string) domain.VisualizationContract {
	archetypeID := SelectArchetype(c.Differentials)
	archetype := ArchetypeByID(archetypeID)

	uncertainty := BuildUncertainty(&m, c.Differentials, b.cfg.AlternateModelMinProbability, b.cfg.SecondRankAlternateMinProbability)

	return domain.VisualizationContract{
		SessionID:           sessionID,
		ECGMetadata:         ecgMetadata(leads, grid, acquisitionType),
		Measurements:        m,
		Interpretation:      interpretation(c),
		ActivationSequence:  archetype.Steps,
		ConductionSystem:    b.conductionSystemState(&m, archetype, c.Differentials),
		Repolarization:      repolarizationSummary(&m, b.cfg.STEMIElevationThresholdMV),
		MechanicalArchetype: archetype.ID,
		Uncertainty:         uncertainty,
		DisplayContract:     displayContract(archetype, &m),
		PipelineDegraded:    degraded,
		PipelineWarnings:    warnings,
	}
}

// FrontendView is the thinner rendering for the visualization layer's
// frontend-adapter view.
type FrontendView struct {
	CardiacCycleDurationMs int                       `json:"cardiac_cycle_duration_ms"`
	ActivationSequence     []FrontendActivationEvent `json:"activation_sequence"`
	Intervals              FrontendIntervals         `json:"intervals"`
	PhaseBoundaries        FrontendPhaseBoundaries   `json:"phase_boundaries"`
}

// FrontendActivationEvent is one folded activation-sequence entry.
type FrontendActivationEvent struct {
	StructureID string  `json:"structure_id"`
	OnsetMs     float64 `json:"onset_ms"`
	DurationMs  float64 `json:"duration_ms"`
}

// FrontendIntervals mirrors the frontend view's intervals block.
type FrontendIntervals struct {
	PRMs  float64 `json:"pr_ms"`
	QRSMs float64 `json:"qrs_ms"`
	QTMs  float64 `json:"qt_ms"`
}

// PhaseBoundary is a {start_ms, end_ms} window.
type PhaseBoundary struct {
	StartMs float64 `json:"start_ms"`
	EndMs   float64 `json:"end_ms"`
}

// FrontendPhaseBoundaries mirrors the frontend view's phase_boundaries block.
type FrontendPhaseBoundaries struct {
	PWave     PhaseBoundary `json:"p_wave"`
	PRSegment PhaseBoundary `json:"pr_segment"`
	QRS       PhaseBoundary `json:"qrs"`
	STSegment PhaseBoundary `json:"st_segment"`
	TWave     PhaseBoundary `json:"t_wave"`
}

// structureIDFolding folds internal fine-grained structures to the
// frontend's coarser union.
var structureIDFolding = map[string]string{
	"sa_node":      "sa_node",
	"internodal":   "internodal",
	"av_node":      "av_node",
	"his_bundle":   "his_bundle",
	"left_bundle":  "left_bundle",
	"right_bundle": "right_bundle",
	"purkinje_lv":  "purkinje",
	"purkinje_rv":  "purkinje",
	"septum":       "purkinje",
	"lv_free_wall": "purkinje",
	"rv_free_wall": "purkinje",
}

// BuildFrontendView renders the thinner visualization-layer record from the
// same Measurements and activation sequence as Build.
func BuildFrontendView(m mdomain.Measurements, steps []domain.ActivationStep) FrontendView {
	cycleDuration := 0
	if m.Rate.Value > 0 {
		cycleDuration = int(math.Round(60000 / m.Rate.Value))
	}

	events := make([]FrontendActivationEvent, 0, len(steps))
	for _, s := range steps {
		structureID, ok := structureIDFolding[s.Structure]
		if !ok {
			structureID = s.Structure
		}
		events = append(events, FrontendActivationEvent{
			StructureID: structureID,
			OnsetMs:     s.OnsetMs,
			DurationMs:  s.OffsetMs - s.OnsetMs,
		})
	}

	pWaveEnd := 0.0
	if len(m.PWaves) > 0 {
		pWaveEnd = m.PWaves[0].DurationMs
	}
	prEnd := m.PR.Value
	qrsEnd := prEnd + m.QRS.Value
	qtEnd := prEnd + m.QT.Value

	return FrontendView{
		CardiacCycleDurationMs: cycleDuration,
		ActivationSequence:     events,
		Intervals: FrontendIntervals{
			PRMs:  m.PR.Value,
			QRSMs: m.QRS.Value,
			QTMs:  m.QT.Value,
		},
		PhaseBoundaries: FrontendPhaseBoundaries{
			PWave:     PhaseBoundary{StartMs: 0, EndMs: pWaveEnd},
			PRSegment: PhaseBoundary{StartMs: pWaveEnd, EndMs: prEnd},
			QRS:       PhaseBoundary{StartMs: prEnd, EndMs: qrsEnd},
			STSegment: PhaseBoundary{StartMs: qrsEnd, EndMs: qtEnd},
			TWave:     PhaseBoundary{StartMs: qtEnd, EndMs: qtEnd},
		},
	}
}
