// Package domain holds the measurement engine's value types.
package domain

import "ecgdigitizer/internal/digitizer/domain"

// MeasurementScalar is a single scalar measurement with full provenance.
type MeasurementScalar struct {
	Value      float64 `json:"value"`
	Unit       string  `json:"unit"`
	Method     string  `json:"method"`
	Confidence float64 `json:"confidence"`
}

// ZeroScalar returns a scalar sentinel (value 0, confidence 0) for a
// measurement that could not be produced: confidence=0 iff the measurement
// could not be produced.
func ZeroScalar(unit, method string) MeasurementScalar {
	return MeasurementScalar{Value: 0, Unit: unit, Method: method, Confidence: 0}
}

// PWaveMorphology is a closed sum type for P-wave polarity classification.
type PWaveMorphology string

const (
	PWaveNormal     PWaveMorphology = "normal"
	PWavePeaked     PWaveMorphology = "peaked"
	PWaveRetrograde PWaveMorphology = "retrograde"
)

// PWaveDetail is a per-lead P-wave measurement.
type PWaveDetail struct {
	Lead          domain.LeadName `json:"lead"`
	DurationMs    float64         `json:"duration_ms"`
	AmplitudeMV   float64         `json:"amplitude_mv"`
	Morphology    PWaveMorphology `json:"morphology"`
	Confidence    float64         `json:"confidence"`
}

// STDeviation is a per-lead ST-segment deviation measurement.
type STDeviation struct {
	Lead         domain.LeadName `json:"lead"`
	DeviationMV  float64         `json:"deviation_mv"`
	Confidence   float64         `json:"confidence"`
}

// TWaveMorphology is a closed sum type for T-wave polarity classification.
type TWaveMorphology string

const (
	TWaveUpright  TWaveMorphology = "upright"
	TWaveInverted TWaveMorphology = "inverted"
	TWaveFlat     TWaveMorphology = "flat"
	TWaveBiphasic TWaveMorphology = "biphasic"
)

// TWaveDetail is a per-lead T-wave morphology measurement.
type TWaveDetail struct {
	Lead        domain.LeadName `json:"lead"`
	AmplitudeMV float64         `json:"amplitude_mv"`
	Morphology  TWaveMorphology `json:"morphology"`
	Confidence  float64         `json:"confidence"`
}

// AxisQuadrant is a closed sum type over the four electrical-axis quadrants.
type AxisQuadrant string

const (
	AxisNormal   AxisQuadrant = "normal"
	AxisLeft     AxisQuadrant = "left"
	AxisRight    AxisQuadrant = "right"
	AxisExtreme  AxisQuadrant = "extreme"
)

// RhythmRegularity is a closed sum type over rhythm-regularity classes.
type RhythmRegularity string

const (
	RhythmRegular             RhythmRegularity = "regular"
	RhythmMildlyIrregular     RhythmRegularity = "mildly_irregular"
	RhythmIrregularlyIrregular RhythmRegularity = "irregularly_irregular"
)

// Measurements is the union of all scalar and per-lead records produced by
// the measurement engine.
type Measurements struct {
	Rate MeasurementScalar `json:"rate"`
	PR   MeasurementScalar `json:"pr"`
	QRS  MeasurementScalar `json:"qrs"`
	QT   MeasurementScalar `json:"qt"`
	QTcBazett     MeasurementScalar `json:"qtc_bazett"`
	QTcFridericia MeasurementScalar `json:"qtc_fridericia"`
	Axis          MeasurementScalar `json:"axis"`

	AxisQuadrant AxisQuadrant `json:"axis_quadrant"`

	RhythmRegularity  RhythmRegularity `json:"rhythm_regularity"`
	RhythmDescription string           `json:"rhythm_description"`

	PrecordialTransitionLead domain.LeadName `json:"precordial_transition_lead,omitempty"`

	SokolowLyonLVH    bool   `json:"sokolow_lyon_lvh"`
	SokolowLyonDetail string `json:"sokolow_lyon_detail"`
	CornellLVH        bool   `json:"cornell_lvh"`
	CornellDetail     string `json:"cornell_detail"`
	RVH               bool   `json:"rvh"`
	RVHDetail         string `json:"rvh_detail"`

	PWaves        []PWaveDetail `json:"p_waves"`
	STDeviations  []STDeviation `json:"st_deviations"`
	TWaveDetails  []TWaveDetail `json:"t_wave_details"`

	BeatCount int `json:"beat_count"`
}

// STByLead returns the ST deviation for a lead, or nil.
func (m *Measurements) STByLead(lead domain.LeadName) *STDeviation {
	for i := range m.STDeviations {
		if m.STDeviations[i].Lead == lead {
			return &m.STDeviations[i]
		}
	}
	return nil
}

// TWaveByLead returns the T-wave detail for a lead, or nil.
func (m *Measurements) TWaveByLead(lead domain.LeadName) *TWaveDetail {
	for i := range m.TWaveDetails {
		if m.TWaveDetails[i].Lead == lead {
			return &m.TWaveDetails[i]
		}
	}
	return nil
}
