package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// ComputeQT measures QT per beat by the tangent method: find the T-wave peak
// within [QRS_onset+200ms, QRS_onset+600ms], then the first point after that
// peak whose deviation from the pre-QRS baseline falls below 0.03 mV. QT is
// T_end minus QRS_onset. QTc-Bazett and QTc-Fridericia are derived from the
// mean RR interval.
func ComputeQT(lead *domain.LeadSignal, beats []beatQRS, rrMs []float64, cfg config.MeasurementConfig) (qt, qtcBazett, qtcFridericia mdomain.MeasurementScalar) {
	fs := cfgFS(lead)
	stepMs := 1000 / fs
	searchStart := msToSamples(cfg.TPeakSearchStartMs, fs)
	searchEnd := msToSamples(cfg.TPeakSearchEndMs, fs)
	baselineStart := msToSamples(cfg.STBaselineStartMs, fs)
	baselineEnd := msToSamples(cfg.STBaselineEndMs, fs)

	var values []float64
	for _, b := range beats {
		lo := minInt(len(lead.AmplitudeMV)-1, b.Onset+searchStart)
		hi := minInt(len(lead.AmplitudeMV), b.Onset+searchEnd)
		if hi-lo < 2 {
			continue
		}

		baseline := 0.0
		blLo := maxInt(0, b.RIdx-baselineStart)
		blHi := maxInt(blLo, b.RIdx-baselineEnd)
		if blHi > blLo {
			baseline = mean(lead.AmplitudeMV[blLo:blHi])
		}

		tPeakIdx := lo
		tPeakVal := math.Abs(lead.AmplitudeMV[lo] - baseline)
		for i := lo; i < hi; i++ {
			d := math.Abs(lead.AmplitudeMV[i] - baseline)
			if d > tPeakVal {
				tPeakVal = d
				tPeakIdx = i
			}
		}

		tEnd := hi - 1
		for i := tPeakIdx; i < len(lead.AmplitudeMV); i++ {
			if math.Abs(lead.AmplitudeMV[i]-baseline) < cfg.TEndDeviationThresholdMV {
				tEnd = i
				break
			}
			tEnd = i
		}

		qtMs := float64(tEnd-b.Onset) * stepMs
		if qtMs > 0 {
			values = append(values, qtMs)
		}
	}

	if len(values) == 0 {
		return mdomain.ZeroScalar("ms", "qt_tangent_method"),
			mdomain.ZeroScalar("ms", "qtc_bazett"),
			mdomain.ZeroScalar("ms", "qtc_fridericia")
	}

	meanQT := mean(values)
	confidence := math.Min(1, float64(len(values))/3.0)
	qt = mdomain.MeasurementScalar{Value: meanQT, Unit: "ms", Method: "qt_tangent_method", Confidence: confidence}

	if len(rrMs) == 0 {
		return qt, mdomain.ZeroScalar("ms", "qtc_bazett"), mdomain.ZeroScalar("ms", "qtc_fridericia")
	}
	rrSec := mean(rrMs) / 1000
	qtSec := meanQT / 1000

	qtcBazett = mdomain.MeasurementScalar{
		Value:      qtSec / math.Sqrt(rrSec) * 1000,
		Unit:       "ms",
		Method:     "qtc_bazett",
		Confidence: confidence,
	}
	qtcFridericia = mdomain.MeasurementScalar{
		Value:      qtSec / math.Cbrt(rrSec) * 1000,
		Unit:       "ms",
		Method:     "qtc_fridericia",
		Confidence: confidence,
	}
	return qt, qtcBazett, qtcFridericia
}
