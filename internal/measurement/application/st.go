package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// ComputeST measures ST-segment deviation for one lead at J+60ms relative to
// the pre-P (TP-segment) baseline, averaged across beats.
func ComputeST(lead domain.LeadName, signal *domain.LeadSignal, beats []beatQRS, cfg config.MeasurementConfig) mdomain.STDeviation {
	fs := cfgFS(signal)
	measureOffset := msToSamples(cfg.STMeasureOffsetMs, fs)
	baselineStart := msToSamples(cfg.STBaselineStartMs, fs)
	baselineEnd := msToSamples(cfg.STBaselineEndMs, fs)

	var deviations []float64
	for _, b := range beats {
		jIdx := b.Offset + measureOffset
		if jIdx < 0 || jIdx >= len(signal.AmplitudeMV) {
			continue
		}
		blLo := maxInt(0, b.RIdx-baselineStart)
		blHi := maxInt(blLo, b.RIdx-baselineEnd)
		if blHi <= blLo {
			continue
		}
		baseline := mean(signal.AmplitudeMV[blLo:blHi])
		deviations = append(deviations, signal.AmplitudeMV[jIdx]-baseline)
	}

	if len(deviations) == 0 {
		return mdomain.STDeviation{Lead: lead, DeviationMV: 0, Confidence: 0}
	}

	return mdomain.STDeviation{
		Lead:        lead,
		DeviationMV: mean(deviations),
		Confidence:  math.Min(1, float64(len(deviations))/3.0),
	}
}
