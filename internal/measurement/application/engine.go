// Package application implements the measurement engine: deterministic
// signal processing over calibrated lead traces.
package application

import (
	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// Engine runs the full measurement pipeline over a digitizer result.
type Engine struct {
	cfg config.MeasurementConfig
}

// NewEngine builds an Engine with the given configuration.
func NewEngine(cfg config.MeasurementConfig) *Engine {
	return &Engine{cfg: cfg}
}

// preferredLead selects II, falling back to II_rhythm, then the longest
// usable lead.
func preferredLead(leads map[domain.LeadName]*domain.LeadSignal) *domain.LeadSignal {
	if l := leads[domain.LeadII]; l != nil && !l.Failed() {
		return l
	}
	if l := leads[domain.LeadIIRhythm]; l != nil && !l.Failed() {
		return l
	}
	var best *domain.LeadSignal
	for _, l := range leads {
		if l == nil || l.Failed() {
			continue
		}
		if best == nil || l.Duration() > best.Duration() {
			best = l
		}
	}
	return best
}

// Run computes rate, rhythm regularity, all interval measurements, axis,
// voltage criteria, and per-lead ST/T-wave/P-wave detail from a digitizer
// result's leads.
func (e *Engine) Run(leads []*domain.LeadSignal) mdomain.Measurements {
	byName := make(map[domain.LeadName]*domain.LeadSignal, len(leads))
	for _, l := range leads {
		byName[l.Lead] = l
	}

	out := mdomain.Measurements{
		AxisQuadrant: mdomain.AxisNormal,
	}

	lead := preferredLead(byName)
	if lead == nil {
		out.Rate = mdomain.ZeroScalar("bpm", "rr_interval_mean")
		out.PR = mdomain.ZeroScalar("ms", "pr_baseline_deviation_backsearch")
		out.QRS = mdomain.ZeroScalar("ms", "qrs_onset_offset_derivative_threshold")
		out.QT = mdomain.ZeroScalar("ms", "qt_tangent_method")
		out.QTcBazett = mdomain.ZeroScalar("ms", "qtc_bazett")
		out.QTcFridericia = mdomain.ZeroScalar("ms", "qtc_fridericia")
		out.Axis = mdomain.ZeroScalar("deg", "axis_frontal_plane_net_qrs")
		out.RhythmRegularity = mdomain.RhythmIrregularlyIrregular
		out.RhythmDescription = "no usable leads"
		return out
	}

	peaks := DetectRPeaks(lead, e.cfg)
	out.BeatCount = len(peaks)
	stepMs := 1000 / cfgFS(lead)
	rrMs := rrIntervalsMs(peaks, stepMs)

	out.Rate, out.RhythmRegularity, out.RhythmDescription = ComputeRate(rrMs, e.cfg)

	beats := computeBeatQRS(lead, peaks, e.cfg)
	out.QRS = ComputeQRS(lead, beats, e.cfg)
	out.PR = ComputePR(lead, beats, e.cfg)
	out.QT, out.QTcBazett, out.QTcFridericia = ComputeQT(lead, beats, rrMs, e.cfg)

	leadI := byName[domain.LeadI]
	leadAVF := byName[domain.LeadAVF]
	peaksI := DetectRPeaks(leadI, e.cfg)
	peaksAVF := DetectRPeaks(leadAVF, e.cfg)
	out.Axis, out.AxisQuadrant, out.PrecordialTransitionLead = ComputeAxis(peaksI, peaksAVF, leadI, leadAVF, byName, e.cfg)

	voltage := ComputeVoltageCriteria(byName, e.cfg)
	out.SokolowLyonLVH = voltage.SokolowLyonLVH
	out.SokolowLyonDetail = voltage.SokolowLyonDetail
	out.CornellLVH = voltage.CornellLVH
	out.CornellDetail = voltage.CornellDetail
	out.RVH = voltage.RVH
	out.RVHDetail = voltage.RVHDetail

	for _, name := range domain.StandardLeadNames {
		sig := byName[name]
		if sig == nil || sig.Failed() {
			continue
		}
		leadBeats := computeBeatQRS(sig, DetectRPeaks(sig, e.cfg), e.cfg)
		if len(leadBeats) == 0 {
			leadBeats = beats
		}
		out.PWaves = append(out.PWaves, ComputePWave(name, sig, peaksForLead(sig, e.cfg), e.cfg))
		out.STDeviations = append(out.STDeviations, ComputeST(name, sig, leadBeats, e.cfg))
		out.TWaveDetails = append(out.TWaveDetails, ComputeTWave(name, sig, leadBeats, e.cfg))
	}

	return out
}

// peaksForLead is a small convenience wrapper so P-wave detection always
// uses the lead's own R peaks, never the preferred lead's.
func peaksForLead(sig *domain.LeadSignal, cfg config.MeasurementConfig) []int {
	return DetectRPeaks(sig, cfg)
}
