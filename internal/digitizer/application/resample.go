package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
)

// CalibrateAndResample converts a raw per-column centerline trace into a
// calibrated LeadSignal at the target sample rate.
func CalibrateAndResample(lead domain.LeadName, trace *ColumnTrace, grid *domain.GridModel, cfg config.DigitizerConfig) *domain.LeadSignal {
	numCols := len(trace.Y)
	if numCols == 0 {
		return domain.NewFailedLeadSignal(lead, "empty trace")
	}

	pxPerSec := grid.SmallSquarePx * grid.PaperSpeedMMPerSec
	pxPerMV := grid.SmallSquarePx * grid.AmplitudeScaleMMPerMV
	if pxPerSec <= 0 || pxPerMV <= 0 {
		return domain.NewFailedLeadSignal(lead, "invalid grid calibration")
	}

	baseline := median(trace.Y)

	rawTimeMs := make([]float64, numCols)
	rawAmpMV := make([]float64, numCols)
	for col := 0; col < numCols; col++ {
		rawTimeMs[col] = float64(col) / pxPerSec * 1000
		rawAmpMV[col] = (baseline - trace.Y[col]) / pxPerMV
	}

	durationS := rawTimeMs[numCols-1] / 1000
	targetN := int(math.Round(durationS * cfg.TargetSampleRateHz))
	if targetN < 1 {
		targetN = 1
	}

	resampledAmp := lanczosResample(rawAmpMV, targetN)
	timeMs := make([]float64, targetN)
	stepMs := 1000.0 / cfg.TargetSampleRateHz
	for i := range timeMs {
		timeMs[i] = float64(i) * stepMs
	}

	overallConfidence := overallLeadConfidence(trace.Confidence)

	return &domain.LeadSignal{
		Lead:        lead,
		TimeMs:      timeMs,
		AmplitudeMV: resampledAmp,
		TargetHz:    cfg.TargetSampleRateHz,
		Confidence:  overallConfidence,
	}
}

// overallLeadConfidence is the fraction of columns with per-column
// confidence > 0.1, clamped to [0,1].
func overallLeadConfidence(colConf []float64) float64 {
	if len(colConf) == 0 {
		return 0
	}
	n := 0
	for _, c := range colConf {
		if c > 0.1 {
			n++
		}
	}
	return clampFloat(float64(n)/float64(len(colConf)), 0, 1)
}

// DetectAcquisitionType classifies the acquisition as stitched when the
// median lead duration is below the configured threshold.
func DetectAcquisitionType(leads []*domain.LeadSignal, cfg config.DigitizerConfig) domain.AcquisitionType {
	var durations []float64
	for _, l := range leads {
		if !l.Failed() {
			durations = append(durations, l.Duration())
		}
	}
	if len(durations) == 0 {
		return domain.AcquisitionStitched
	}
	if median(durations) < cfg.StitchedDurationMs {
		return domain.AcquisitionStitched
	}
	return domain.AcquisitionSimultaneous
}
