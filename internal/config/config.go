// Package config carries the pipeline stages' tunable numeric thresholds.
// The classifier's per-checker criteria and gate values, and the archetype
// package's ambiguity table, are literals in their own packages and are not
// configured here.
package config

import "time"

// PipelineConfig bundles the thresholds used across the digitizer,
// measurement engine, classifier, and archetype mapper. A single default
// instance (DefaultPipelineConfig) matches the calibrated default thresholds;
// callers may override individual fields for testing or for a different
// paper/vendor profile.
type PipelineConfig struct {
	Digitizer   DigitizerConfig
	Measurement MeasurementConfig
	Classifier  ClassifierConfig
	Session     SessionConfig
}

// DigitizerConfig controls image preprocessing, grid characterization, lead
// segmentation, grid removal, and waveform tracing.
type DigitizerConfig struct {
	// Perspective correction.
	MinContourAreaFraction float64 // 0.20

	// Grid characterization (FFT path).
	MinGridPitchPx float64 // 2
	MaxGridPitchPx float64 // 30
	FallbackPitchPx float64 // 4
	LargeSquareRatio float64 // 5

	// Hough fallback band.
	HoughMinGapPx float64 // 2
	HoughMaxGapPx float64 // 50
	HoughMaxAngleDeg float64 // 5

	// Calibration pulse.
	CalPulseMinAspect float64 // 0.05
	CalPulseMaxAspect float64 // 0.5
	CalPulseHeightTolerance float64 // 0.30
	CalPulseExpectedMV float64 // 1.0
	CalPulseWarnDeltaMV float64 // 0.15

	// Lead segmentation margins.
	TopBottomMarginFraction float64 // 0.05
	LeftRightMarginFraction float64 // 0.03
	AdaptiveThresholdStdDevMultiple float64 // 0.3
	RhythmStripHeightFraction float64 // 0.90
	RhythmStripMinVariance float64 // 500

	// Grid removal.
	ColorDominanceFraction float64 // 0.03
	MorphKernelMinPx float64 // 12
	MorphKernelPitchMultiple float64 // 1.5
	NotchHarmonics int // 3
	NotchBandwidthBins int // 2
	InkSurvivalFraction float64 // 0.005

	// Waveform centerline extraction.
	ColumnPeakThresholdFraction float64 // 0.20
	MinTracedColumnFraction float64 // 0.05
	ContinuityJumpFraction float64 // 0.20
	MedianFilterWidth int // 3..5, default 3
	LowInkThreshold float64

	// Calibrated resampling.
	PaperSpeedMMPerSec float64 // 25
	AmplitudeScaleMMPerMV float64 // 10
	TargetSampleRateHz float64 // 500
	StitchedDurationMs float64 // 4000

	// Readiness.
	MinUsableLeadConfidence float64 // 0.05
	MinUsableLeadCountWarn int // 6
}

// MeasurementConfig controls R-peak detection, interval measurement, axis,
// voltage criteria, ST, and T-wave detail extraction.
type MeasurementConfig struct {
	BandpassLowHz float64 // 5
	BandpassHighHz float64 // 30
	BandpassOrder int // 3
	SmoothingWindowMs float64 // 150
	ThresholdStdDevMultiple float64 // 0.5
	MinRRSpacingMs float64 // 200
	RefineWindowMs float64 // 50

	RegularCVThreshold float64 // 0.15
	MildlyIrregularCVThreshold float64 // 0.30

	PWaveSearchStartMs float64 // 280 before R
	PWaveSearchEndMs float64 // 80 before R
	PWaveMinProminenceMV float64 // 0.02
	PWavePeakedThresholdMV float64 // 0.25

	PROnsetBackSearchFraction float64 // 0.20 of local max derivative
	PRSearchStartMs float64 // 200 before QRS onset
	PRSearchEndMs float64 // 40 before QRS onset
	PRBaselineDeviationFraction float64 // 0.5
	PRMinMs float64 // 80
	PRMaxMs float64 // 400

	QRSOffsetDerivativeFraction float64 // 0.15
	QRSMinMs float64 // 40
	QRSMaxMs float64 // 250

	TPeakSearchStartMs float64 // 200 after QRS onset
	TPeakSearchEndMs float64 // 600 after QRS onset
	TEndDeviationThresholdMV float64 // 0.03

	AxisWindowMs float64 // 60
	AxisNormalMin float64 // -30
	AxisNormalMax float64 // 90
	AxisExtremeMin float64 // -90 (left begins here, inclusive)

	SokolowLyonThresholdMV float64 // 3.5
	CornellThresholdMV float64 // 2.4
	RVHThresholdMV float64 // 0.7

	STMeasureOffsetMs float64 // 60 after J point
	STBaselineStartMs float64 // 300 before R
	STBaselineEndMs float64 // 200 before R

	TWaveSearchStartMs float64 // 150 after R
	TWaveSearchEndMs float64 // 400 after R
	TWaveUprightThresholdMV float64 // 0.05
	TWaveInvertedThresholdMV float64 // -0.05
}

// ClassifierConfig controls checker-gate thresholds and the candidate cutoff.
type ClassifierConfig struct {
	MinCandidateProbability float64 // 0.05
	TierHighThreshold float64 // 0.7
	TierModerateThreshold float64 // 0.4
	RhythmCandidateMinProbability float64 // 0.5
	ConductionAbnormalityMinProbability float64 // 0.4
	STEMIElevationThresholdMV float64 // 0.1
	AnteriorSTEMIElevationThresholdMV float64 // 0.15
	AlternateModelMinProbability float64 // 0.2
	SecondRankAlternateMinProbability float64 // 0.3
}

// SessionConfig controls the in-memory session-blob store.
type SessionConfig struct {
	DefaultTTL time.Duration // 3600s
	DefaultCapacity int // 100
}

// DefaultPipelineConfig returns the standard calibrated thresholds for the
// pipeline's default paper/vendor profile.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		Digitizer: DigitizerConfig{
			MinContourAreaFraction:          0.20,
			MinGridPitchPx:                  2,
			MaxGridPitchPx:                  30,
			FallbackPitchPx:                 4,
			LargeSquareRatio:                5,
			HoughMinGapPx:                   2,
			HoughMaxGapPx:                   50,
			HoughMaxAngleDeg:                5,
			CalPulseMinAspect:               0.05,
			CalPulseMaxAspect:               0.5,
			CalPulseHeightTolerance:         0.30,
			CalPulseExpectedMV:              1.0,
			CalPulseWarnDeltaMV:             0.15,
			TopBottomMarginFraction:         0.05,
			LeftRightMarginFraction:         0.03,
			AdaptiveThresholdStdDevMultiple: 0.3,
			RhythmStripHeightFraction:       0.90,
			RhythmStripMinVariance:          500,
			ColorDominanceFraction:          0.03,
			MorphKernelMinPx:                12,
			MorphKernelPitchMultiple:        1.5,
			NotchHarmonics:                  3,
			NotchBandwidthBins:              2,
			InkSurvivalFraction:             0.005,
			ColumnPeakThresholdFraction:     0.20,
			MinTracedColumnFraction:         0.05,
			ContinuityJumpFraction:          0.20,
			MedianFilterWidth:               3,
			LowInkThreshold:                 0.05,
			PaperSpeedMMPerSec:              25,
			AmplitudeScaleMMPerMV:           10,
			TargetSampleRateHz:              500,
			StitchedDurationMs:              4000,
			MinUsableLeadConfidence:         0.05,
			MinUsableLeadCountWarn:          6,
		},
		Measurement: MeasurementConfig{
			BandpassLowHz:                5,
			BandpassHighHz:               30,
			BandpassOrder:                3,
			SmoothingWindowMs:            150,
			ThresholdStdDevMultiple:      0.5,
			MinRRSpacingMs:               200,
			RefineWindowMs:               50,
			RegularCVThreshold:           0.15,
			MildlyIrregularCVThreshold:   0.30,
			PWaveSearchStartMs:           280,
			PWaveSearchEndMs:             80,
			PWaveMinProminenceMV:         0.02,
			PWavePeakedThresholdMV:       0.25,
			PROnsetBackSearchFraction:    0.20,
			PRSearchStartMs:              200,
			PRSearchEndMs:                40,
			PRBaselineDeviationFraction:  0.5,
			PRMinMs:                      80,
			PRMaxMs:                      400,
			QRSOffsetDerivativeFraction:  0.15,
			QRSMinMs:                     40,
			QRSMaxMs:                     250,
			TPeakSearchStartMs:           200,
			TPeakSearchEndMs:             600,
			TEndDeviationThresholdMV:     0.03,
			AxisWindowMs:                 60,
			AxisNormalMin:                -30,
			AxisNormalMax:                90,
			AxisExtremeMin:               -90,
			SokolowLyonThresholdMV:       3.5,
			CornellThresholdMV:           2.4,
			RVHThresholdMV:               0.7,
			STMeasureOffsetMs:            60,
			STBaselineStartMs:            300,
			STBaselineEndMs:              200,
			TWaveSearchStartMs:           150,
			TWaveSearchEndMs:             400,
			TWaveUprightThresholdMV:      0.05,
			TWaveInvertedThresholdMV:     -0.05,
		},
		Classifier: ClassifierConfig{
			MinCandidateProbability:             0.05,
			TierHighThreshold:                   0.7,
			TierModerateThreshold:               0.4,
			RhythmCandidateMinProbability:       0.5,
			ConductionAbnormalityMinProbability: 0.4,
			STEMIElevationThresholdMV:           0.1,
			AnteriorSTEMIElevationThresholdMV:   0.15,
			AlternateModelMinProbability:        0.2,
			SecondRankAlternateMinProbability:   0.3,
		},
		Session: SessionConfig{
			DefaultTTL:      3600 * time.Second,
			DefaultCapacity: 100,
		},
	}
}
