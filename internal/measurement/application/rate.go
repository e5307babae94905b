package application

import (
	"math"

	"ecgdigitizer/internal/config"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// ComputeRate derives heart rate and rhythm regularity from RR intervals
//.
func ComputeRate(rrMs []float64, cfg config.MeasurementConfig) (mdomain.MeasurementScalar, mdomain.RhythmRegularity, string) {
	nBeats := len(rrMs) + 1
	if len(rrMs) == 0 {
		return mdomain.ZeroScalar("bpm", "rr_interval_mean"), mdomain.RhythmIrregularlyIrregular, "no beats detected"
	}

	meanRR := mean(rrMs)
	rate := 60000.0 / meanRR
	confidence := math.Min(1, float64(nBeats)/5.0)

	cv := 0.0
	if meanRR > 0 {
		cv = stddev(rrMs) / meanRR
	}

	var regularity mdomain.RhythmRegularity
	var description string
	switch {
	case cv < cfg.RegularCVThreshold:
		regularity = mdomain.RhythmRegular
		description = "regular rhythm"
	case cv < cfg.MildlyIrregularCVThreshold:
		regularity = mdomain.RhythmMildlyIrregular
		description = "mildly irregular rhythm"
	default:
		regularity = mdomain.RhythmIrregularlyIrregular
		description = "irregularly irregular rhythm"
	}

	return mdomain.MeasurementScalar{
		Value:      rate,
		Unit:       "bpm",
		Method:     "rr_interval_mean",
		Confidence: confidence,
	}, regularity, description
}
