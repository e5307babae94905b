package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// netQRSAmplitude returns the net QRS amplitude for one beat: (max-min)
// across +/-60ms of the R peak, signed by the R peak's own polarity.
func netQRSAmplitude(lead *domain.LeadSignal, rIdx int, windowSamples int) float64 {
	x := lead.AmplitudeMV
	lo := maxInt(0, rIdx-windowSamples)
	hi := minInt(len(x), rIdx+windowSamples+1)
	if hi <= lo {
		return 0
	}
	window := x[lo:hi]
	maxV, minV := window[0], window[0]
	for _, v := range window {
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
	}
	amp := maxV - minV
	if x[rIdx] < 0 {
		amp = -amp
	}
	return amp
}

// meanNetQRSAmplitude averages netQRSAmplitude over every beat in a lead.
func meanNetQRSAmplitude(lead *domain.LeadSignal, peaks []int, windowSamples int) float64 {
	if lead == nil || lead.Failed() || len(peaks) == 0 {
		return 0
	}
	var vals []float64
	for _, r := range peaks {
		vals = append(vals, netQRSAmplitude(lead, r, windowSamples))
	}
	return mean(vals)
}

// ComputeAxis derives the frontal-plane electrical axis from the net QRS
// amplitude in leads I and aVF, and the precordial R/S transition lead from
// V1..V6.
func ComputeAxis(leadIPeaks, leadAVFPeaks []int, leadI, leadAVF *domain.LeadSignal, precordial map[domain.LeadName]*domain.LeadSignal, cfg config.MeasurementConfig) (mdomain.MeasurementScalar, mdomain.AxisQuadrant, domain.LeadName) {
	fs := cfgFS(leadI)
	windowSamples := msToSamples(cfg.AxisWindowMs, fs)

	netI := meanNetQRSAmplitude(leadI, leadIPeaks, windowSamples)
	netAVF := meanNetQRSAmplitude(leadAVF, leadAVFPeaks, windowSamples)

	if netI == 0 && netAVF == 0 {
		return mdomain.ZeroScalar("deg", "axis_frontal_plane_net_qrs"), mdomain.AxisNormal, ""
	}

	axisDeg := math.Atan2(netAVF, netI) * 180 / math.Pi
	axisDeg = normalizeAngle(axisDeg)

	var quadrant mdomain.AxisQuadrant
	switch {
	case axisDeg >= cfg.AxisNormalMin && axisDeg <= cfg.AxisNormalMax:
		quadrant = mdomain.AxisNormal
	case axisDeg >= cfg.AxisExtremeMin && axisDeg < cfg.AxisNormalMin:
		quadrant = mdomain.AxisLeft
	case axisDeg > cfg.AxisNormalMax && axisDeg <= 180:
		quadrant = mdomain.AxisRight
	default:
		quadrant = mdomain.AxisExtreme
	}

	confidence := 0.0
	if len(leadIPeaks) > 0 && len(leadAVFPeaks) > 0 {
		confidence = math.Min(1, float64(minInt(len(leadIPeaks), len(leadAVFPeaks)))/3.0)
	}

	transition := precordialTransition(precordial, windowSamples)

	return mdomain.MeasurementScalar{
		Value:      axisDeg,
		Unit:       "deg",
		Method:     "axis_frontal_plane_net_qrs",
		Confidence: confidence,
	}, quadrant, transition
}

// normalizeAngle folds a degree value into (-180, 180].
func normalizeAngle(deg float64) float64 {
	for deg <= -180 {
		deg += 360
	}
	for deg > 180 {
		deg -= 360
	}
	return deg
}

// precordialTransition finds the first of V1..V6 where R-height / |S-depth|
// >= 1.
func precordialTransition(precordial map[domain.LeadName]*domain.LeadSignal, windowSamples int) domain.LeadName {
	order := []domain.LeadName{domain.LeadV1, domain.LeadV2, domain.LeadV3, domain.LeadV4, domain.LeadV5, domain.LeadV6}
	for _, lead := range order {
		sig := precordial[lead]
		if sig == nil || sig.Failed() {
			continue
		}
		rHeight, sDepth := rsExtremes(sig)
		if sDepth == 0 {
			continue
		}
		if rHeight/math.Abs(sDepth) >= 1 {
			return lead
		}
	}
	return ""
}

// rsExtremes returns the lead's global positive peak (R height) and negative
// trough (S depth, negative-valued).
func rsExtremes(sig *domain.LeadSignal) (float64, float64) {
	if len(sig.AmplitudeMV) == 0 {
		return 0, 0
	}
	maxV, minV := sig.AmplitudeMV[0], sig.AmplitudeMV[0]
	for _, v := range sig.AmplitudeMV {
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
	}
	return math.Max(maxV, 0), math.Min(minV, 0)
}
