package application

import (
	"math"

	"ecgdigitizer/internal/digitizer/domain"
)

// gaussian returns a bell-shaped pulse of the given amplitude and width,
// used to synthesize P/QRS/T deflections for tests.
func gaussian(t, center, sigma, amplitude float64) float64 {
	d := t - center
	return amplitude * math.Exp(-(d*d)/(2*sigma*sigma))
}

// syntheticBeats builds a lead signal with nBeats evenly spaced complexes,
// each with a P wave, a narrow QRS spike, and a T wave, at the given rate
// and sample frequency. Returns the signal plus the nominal R-peak sample
// indices so tests can assert against ground truth.
func syntheticBeats(nBeats int, rrMs, fs float64) (*domain.LeadSignal, []int) {
	durationMs := rrMs*float64(nBeats) + 600
	n := int(durationMs / 1000 * fs)
	stepMs := 1000 / fs

	timeMs := make([]float64, n)
	amp := make([]float64, n)
	var rIdx []int

	for i := 0; i < n; i++ {
		t := float64(i) * stepMs
		timeMs[i] = t
	}

	for b := 0; b < nBeats; b++ {
		center := 300 + rrMs*float64(b)
		for i := 0; i < n; i++ {
			t := timeMs[i]
			amp[i] += gaussian(t, center-160, 15, 0.15)
			amp[i] += gaussian(t, center, 8, 1.2)
			amp[i] += gaussian(t, center+250, 40, 0.3)
		}
		idx := int(center / stepMs)
		rIdx = append(rIdx, idx)
	}

	return &domain.LeadSignal{
		Lead:        domain.LeadII,
		TimeMs:      timeMs,
		AmplitudeMV: amp,
		TargetHz:    fs,
		Confidence:  0.9,
	}, rIdx
}

func flatLead(n int, fs float64) *domain.LeadSignal {
	timeMs := make([]float64, n)
	amp := make([]float64, n)
	stepMs := 1000 / fs
	for i := 0; i < n; i++ {
		timeMs[i] = float64(i) * stepMs
	}
	return &domain.LeadSignal{
		Lead:        domain.LeadII,
		TimeMs:      timeMs,
		AmplitudeMV: amp,
		TargetHz:    fs,
		Confidence:  0.9,
	}
}
