// Package domain holds the archetype mapper's value types.
package domain

import (
	cdomain "ecgdigitizer/internal/classifier/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// ActivationStep is one event in an archetype's ordered conduction sequence.
type ActivationStep struct {
	Structure  string  `json:"structure"`
	OnsetMs    float64 `json:"onset_ms"`
	OffsetMs   float64 `json:"offset_ms"`
	DirectionX float64 `json:"direction_x"`
	DirectionY float64 `json:"direction_y"`
	DirectionZ float64 `json:"direction_z"`
	Label      string  `json:"label"`
}

// Archetype is a static, teaching-reconstruction activation sequence keyed
// by id in the archetype library.
type Archetype struct {
	ID                        string           `json:"id"`
	Label                     string           `json:"label"`
	Steps                     []ActivationStep `json:"steps"`
	DefaultAVNodeDelayMs      float64          `json:"default_av_node_delay_ms"`
	IsExplanatoryReconstruction bool          `json:"is_explanatory_reconstruction"`
}

// ConductionSystemState mirrors the canonical contract's conduction_system
// block.
type ConductionSystemState struct {
	SANodeRate               float64  `json:"sa_node_rate,omitempty"`
	InternodalTractsIntact   bool     `json:"internodal_tracts_intact"`
	AVNodeDelayMs            float64  `json:"av_node_delay_ms"`
	HisBundleIntact          bool     `json:"his_bundle_intact"`
	LBBB                     bool     `json:"lbbb"`
	RBBB                     bool     `json:"rbbb"`
	WPW                      bool     `json:"wpw"`
	AccessoryPathwayVectorX  float64  `json:"accessory_pathway_vector_x,omitempty"`
	AccessoryPathwayVectorY  float64  `json:"accessory_pathway_vector_y,omitempty"`
	AccessoryPathwayVectorZ  float64  `json:"accessory_pathway_vector_z,omitempty"`
}

// InjuryCurrentRegion is a scanned region of ST elevation with anatomic
// location and magnitude.
type InjuryCurrentRegion struct {
	Location    string  `json:"location"`
	MagnitudeMV float64 `json:"magnitude_mv"`
}

// RepolarizationSummary mirrors the canonical contract's repolarization
// block.
type RepolarizationSummary struct {
	STDeviationByLead         map[string]float64 `json:"st_deviation_by_lead"`
	TWaveAxis                 *float64            `json:"t_wave_axis,omitempty"`
	RepolarizationGradientMap map[string]float64  `json:"repolarization_gradient_map"`
	InjuryCurrentRegions      []InjuryCurrentRegion `json:"injury_current_regions"`
}

// AlternateModel is one entry in the uncertainty record's alternate-models
// list.
type AlternateModel struct {
	Description       string `json:"description"`
	DiscriminatingTest string `json:"discriminating_test"`
}

// Uncertainty is the full uncertainty record.
type Uncertainty struct {
	UnderdeterminedParameters []string         `json:"underdetermined_parameters"`
	AlternateModels           []AlternateModel `json:"alternate_models"`
}

// DisplayContract is the evidence/assumption honesty split.
type DisplayContract struct {
	EvidenceSupported []string `json:"evidence_supported"`
	ModeledAssumption []string `json:"modeled_assumption"`
}

// DigitizationConfidence is one lead's digitization-confidence entry in
// ecg_metadata.
type DigitizationConfidence struct {
	LeadName      string  `json:"lead_name"`
	Confidence    float64 `json:"confidence"`
	FailureReason string  `json:"failure_reason,omitempty"`
}

// ECGMetadata mirrors the canonical contract's ecg_metadata block.
type ECGMetadata struct {
	PaperSpeed             float64                  `json:"paper_speed"`
	AmplitudeScale         float64                  `json:"amplitude_scale"`
	LeadCount              int                      `json:"lead_count"`
	AcquisitionType        string                   `json:"acquisition_type"`
	DigitizationConfidence []DigitizationConfidence `json:"digitization_confidence"`
}

// Interpretation mirrors the canonical contract's interpretation block. Each
// differential is the classifier's full ranked record (probability, tier,
// criteria, ICD-10) rather than a bare name, so the ordering and tier
// invariants the contract claims can be checked directly on the emitted
// JSON.
type Interpretation struct {
	PrimaryDiagnosis        string                `json:"primary_diagnosis"`
	Differentials           []cdomain.Differential `json:"differentials"`
	Rhythm                  string                `json:"rhythm"`
	ConductionAbnormalities []string              `json:"conduction_abnormalities"`
}

// VisualizationContract is the orchestrator's full canonical output record
//. It is never null.
type VisualizationContract struct {
	SessionID           string                `json:"session_id"`
	ECGMetadata         ECGMetadata           `json:"ecg_metadata"`
	Measurements        mdomain.Measurements  `json:"measurements"`
	Interpretation      Interpretation        `json:"interpretation"`
	ActivationSequence  []ActivationStep      `json:"activation_sequence"`
	ConductionSystem    ConductionSystemState `json:"conduction_system"`
	Repolarization      RepolarizationSummary `json:"repolarization"`
	MechanicalArchetype string                `json:"mechanical_archetype"`
	Uncertainty         Uncertainty           `json:"uncertainty"`
	DisplayContract     DisplayContract       `json:"display_contract"`
	PipelineDegraded    bool                  `json:"pipeline_degraded"`
	PipelineWarnings    []string              `json:"pipeline_warnings"`
}
