package domain

import "image"

// LeadName is a closed sum type over the standard 12 leads plus the optional
// rhythm strip.
type LeadName string

const (
	LeadI        LeadName = "I"
	LeadII       LeadName = "II"
	LeadIII      LeadName = "III"
	LeadAVR      LeadName = "aVR"
	LeadAVL      LeadName = "aVL"
	LeadAVF      LeadName = "aVF"
	LeadV1       LeadName = "V1"
	LeadV2       LeadName = "V2"
	LeadV3       LeadName = "V3"
	LeadV4       LeadName = "V4"
	LeadV5       LeadName = "V5"
	LeadV6       LeadName = "V6"
	LeadIIRhythm LeadName = "II_rhythm"
)

// StandardLeadNames is the canonical ordering of the twelve diagnostic leads
// (the rhythm strip, when present, is appended separately).
var StandardLeadNames = []LeadName{
	LeadI, LeadII, LeadIII, LeadAVR, LeadAVL, LeadAVF,
	LeadV1, LeadV2, LeadV3, LeadV4, LeadV5, LeadV6,
}

// LeadRegion is an axis-aligned bounding box plus a lead label, produced
// during segmentation and discarded after extraction.
type LeadRegion struct {
	Lead LeadName
	Rect image.Rectangle
}

// LeadSignal is a calibrated, resampled voltage-vs-time lead trace.
type LeadSignal struct {
	Lead           LeadName  `json:"lead"`
	TimeMs         []float64 `json:"-"`
	AmplitudeMV    []float64 `json:"-"`
	TargetHz       float64   `json:"target_hz"`
	Confidence     float64   `json:"confidence"`
	FailureReason  string    `json:"failure_reason,omitempty"`
}

// Failed reports whether the lead carries a failure reason, in which case
// length-1 signals and zero confidence are permitted.
func (l *LeadSignal) Failed() bool {
	return l != nil && l.FailureReason != ""
}

// NewFailedLeadSignal builds a sentinel failed signal.
func NewFailedLeadSignal(lead LeadName, reason string) *LeadSignal {
	return &LeadSignal{
		Lead:          lead,
		TimeMs:        []float64{0},
		AmplitudeMV:   []float64{0},
		Confidence:    0,
		FailureReason: reason,
	}
}

// Duration returns the signal's span in milliseconds.
func (l *LeadSignal) Duration() float64 {
	if l == nil || len(l.TimeMs) == 0 {
		return 0
	}
	return l.TimeMs[len(l.TimeMs)-1] - l.TimeMs[0]
}

// SampleAt returns the amplitude at the sample nearest to t milliseconds,
// or (0, false) if t falls outside the signal's span.
func (l *LeadSignal) SampleAt(tMs float64) (float64, bool) {
	if l == nil || len(l.TimeMs) == 0 {
		return 0, false
	}
	if tMs < l.TimeMs[0] || tMs > l.TimeMs[len(l.TimeMs)-1] {
		return 0, false
	}
	idx := l.IndexAt(tMs)
	return l.AmplitudeMV[idx], true
}

// IndexAt returns the index of the sample nearest to tMs, clamped to range.
func (l *LeadSignal) IndexAt(tMs float64) int {
	if len(l.TimeMs) == 0 {
		return 0
	}
	if len(l.TimeMs) == 1 {
		return 0
	}
	stepMs := l.TimeMs[1] - l.TimeMs[0]
	if stepMs <= 0 {
		stepMs = 1000.0 / l.TargetHz
	}
	idx := int((tMs - l.TimeMs[0]) / stepMs)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(l.TimeMs) {
		idx = len(l.TimeMs) - 1
	}
	return idx
}

// Window returns the slice of amplitudes whose time falls in [startMs, endMs].
func (l *LeadSignal) Window(startMs, endMs float64) []float64 {
	if l == nil {
		return nil
	}
	var out []float64
	for i, t := range l.TimeMs {
		if t >= startMs && t <= endMs {
			out = append(out, l.AmplitudeMV[i])
		}
	}
	return out
}

// WindowIndices returns the [lo, hi) index range covering [startMs, endMs].
func (l *LeadSignal) WindowIndices(startMs, endMs float64) (int, int) {
	lo, hi := -1, -1
	for i, t := range l.TimeMs {
		if t >= startMs && lo == -1 {
			lo = i
		}
		if t <= endMs {
			hi = i + 1
		}
	}
	if lo == -1 {
		lo = 0
	}
	if hi == -1 || hi < lo {
		hi = lo
	}
	return lo, hi
}

// AcquisitionType is a closed sum type.
type AcquisitionType string

const (
	AcquisitionSimultaneous AcquisitionType = "simultaneous"
	AcquisitionStitched     AcquisitionType = "stitched"
)
