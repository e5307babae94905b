package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// ComputePWave detects the P wave in a lead's window preceding each beat's R
// peak: [R-280ms, R-80ms], picking peaks with prominence >= 0.02 mV and
// reporting mean duration (width at half-prominence) and mean amplitude,
// with polarity-driven morphology.
func ComputePWave(lead domain.LeadName, signal *domain.LeadSignal, peaks []int, cfg config.MeasurementConfig) mdomain.PWaveDetail {
	fs := cfgFS(signal)
	stepMs := 1000 / fs
	searchStart := msToSamples(cfg.PWaveSearchStartMs, fs)
	searchEnd := msToSamples(cfg.PWaveSearchEndMs, fs)

	var durations, amplitudes []float64
	for _, r := range peaks {
		lo := maxInt(0, r-searchStart)
		hi := maxInt(lo, r-searchEnd)
		if hi-lo < 3 {
			continue
		}
		window := signal.AmplitudeMV[lo:hi]
		peakIdx, prominence := findDominantPeak(window)
		if prominence < cfg.PWaveMinProminenceMV {
			continue
		}
		width := halfProminenceWidth(window, peakIdx, prominence)
		durations = append(durations, width*stepMs)
		amplitudes = append(amplitudes, window[peakIdx])
	}

	if len(durations) == 0 {
		return mdomain.PWaveDetail{
			Lead:       lead,
			Confidence: 0,
			Morphology: mdomain.PWaveNormal,
		}
	}

	amp := mean(amplitudes)
	morphology := mdomain.PWaveNormal
	switch {
	case lead == domain.LeadAVR && amp < 0:
		morphology = mdomain.PWaveRetrograde
	case amp > cfg.PWavePeakedThresholdMV:
		morphology = mdomain.PWavePeaked
	}

	return mdomain.PWaveDetail{
		Lead:        lead,
		DurationMs:  mean(durations),
		AmplitudeMV: amp,
		Morphology:  morphology,
		Confidence:  math.Min(1, float64(len(durations))/3.0),
	}
}

// findDominantPeak returns the index and prominence (value minus the
// higher of the two flanking minima) of the largest local maximum.
func findDominantPeak(x []float64) (int, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	best := 0
	for i, v := range x {
		if v > x[best] {
			best = i
		}
	}
	leftMin, rightMin := x[best], x[best]
	for i := best; i >= 0; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}
	for i := best; i < len(x); i++ {
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}
	base := math.Max(leftMin, rightMin)
	return best, x[best] - base
}

// halfProminenceWidth returns the width in samples of the peak at half its
// prominence above the surrounding baseline.
func halfProminenceWidth(x []float64, peakIdx int, prominence float64) float64 {
	halfLevel := x[peakIdx] - prominence/2
	left := peakIdx
	for left > 0 && x[left] > halfLevel {
		left--
	}
	right := peakIdx
	for right < len(x)-1 && x[right] > halfLevel {
		right++
	}
	return float64(right - left)
}
