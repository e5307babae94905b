package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// ComputeTWave measures T-wave morphology for one lead: within [R+150ms,
// R+400ms], the sample with maximum absolute deviation from baseline gives
// the signed amplitude; polarity classifies morphology, with a window that
// crosses both thresholds overriding to biphasic.
func ComputeTWave(lead domain.LeadName, signal *domain.LeadSignal, beats []beatQRS, cfg config.MeasurementConfig) mdomain.TWaveDetail {
	fs := cfgFS(signal)
	searchStart := msToSamples(cfg.TWaveSearchStartMs, fs)
	searchEnd := msToSamples(cfg.TWaveSearchEndMs, fs)
	baselineStart := msToSamples(cfg.STBaselineStartMs, fs)
	baselineEnd := msToSamples(cfg.STBaselineEndMs, fs)

	var amplitudes []float64
	sawUpright, sawInverted := false, false
	for _, b := range beats {
		lo := minInt(len(signal.AmplitudeMV)-1, b.RIdx+searchStart)
		hi := minInt(len(signal.AmplitudeMV), b.RIdx+searchEnd)
		if hi-lo < 2 {
			continue
		}
		blLo := maxInt(0, b.RIdx-baselineStart)
		blHi := maxInt(blLo, b.RIdx-baselineEnd)
		baseline := 0.0
		if blHi > blLo {
			baseline = mean(signal.AmplitudeMV[blLo:blHi])
		}

		window := signal.AmplitudeMV[lo:hi]
		extremeIdx := 0
		extremeDev := window[0] - baseline
		for i, v := range window {
			d := v - baseline
			if math.Abs(d) > math.Abs(extremeDev) {
				extremeDev = d
				extremeIdx = i
			}
			if d > cfg.TWaveUprightThresholdMV {
				sawUpright = true
			}
			if d < cfg.TWaveInvertedThresholdMV {
				sawInverted = true
			}
		}
		_ = extremeIdx
		amplitudes = append(amplitudes, extremeDev)
	}

	if len(amplitudes) == 0 {
		return mdomain.TWaveDetail{Lead: lead, Morphology: mdomain.TWaveFlat, Confidence: 0}
	}

	amp := mean(amplitudes)
	var morphology mdomain.TWaveMorphology
	switch {
	case sawUpright && sawInverted:
		morphology = mdomain.TWaveBiphasic
	case amp > cfg.TWaveUprightThresholdMV:
		morphology = mdomain.TWaveUpright
	case amp < cfg.TWaveInvertedThresholdMV:
		morphology = mdomain.TWaveInverted
	default:
		morphology = mdomain.TWaveFlat
	}

	return mdomain.TWaveDetail{
		Lead:        lead,
		AmplitudeMV: amp,
		Morphology:  morphology,
		Confidence:  math.Min(1, float64(len(amplitudes))/3.0),
	}
}
