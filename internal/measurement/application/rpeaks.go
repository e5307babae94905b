package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
)

// DetectRPeaks is the canonical R-peak detector: bandpass
// filter, differentiate, square, moving-average smooth, adaptive threshold,
// local-maxima search with a minimum refractory spacing, then refine each
// peak to the raw-signal amplitude maximum within a small window.
func DetectRPeaks(lead *domain.LeadSignal, cfg config.MeasurementConfig) []int {
	if lead == nil || lead.Failed() || len(lead.AmplitudeMV) < 4 {
		return nil
	}
	fs := lead.TargetHz
	if fs <= 0 {
		fs = 500
	}

	filtered := bandpassFilter(lead.AmplitudeMV, cfg.BandpassLowHz, cfg.BandpassHighHz, fs, cfg.BandpassOrder)

	diff := make([]float64, len(filtered))
	for i := 1; i < len(filtered); i++ {
		diff[i] = filtered[i] - filtered[i-1]
	}

	squared := make([]float64, len(diff))
	for i, v := range diff {
		squared[i] = v * v
	}

	windowSamples := int(cfg.SmoothingWindowMs / 1000 * fs)
	energy := movingAverage(squared, windowSamples)

	threshold := mean(energy) + cfg.ThresholdStdDevMultiple*stddev(energy)
	minSpacingSamples := int(cfg.MinRRSpacingMs / 1000 * fs)
	if minSpacingSamples < 1 {
		minSpacingSamples = 1
	}

	var candidates []int
	for i := 1; i < len(energy)-1; i++ {
		if energy[i] <= threshold {
			continue
		}
		if energy[i] >= energy[i-1] && energy[i] >= energy[i+1] {
			if len(candidates) == 0 || i-candidates[len(candidates)-1] >= minSpacingSamples {
				candidates = append(candidates, i)
			} else if energy[i] > energy[candidates[len(candidates)-1]] {
				candidates[len(candidates)-1] = i
			}
		}
	}

	refineSamples := int(cfg.RefineWindowMs / 1000 * fs)
	peaks := make([]int, 0, len(candidates))
	for _, c := range candidates {
		peaks = append(peaks, refinePeak(lead.AmplitudeMV, c, refineSamples))
	}
	return dedupeSorted(peaks)
}

func refinePeak(x []float64, center, window int) int {
	lo := maxInt(0, center-window)
	hi := minInt(len(x)-1, center+window)
	best := center
	bestVal := math.Inf(-1)
	for i := lo; i <= hi; i++ {
		v := math.Abs(x[i])
		if v > bestVal {
			bestVal = v
			best = i
		}
	}
	return best
}

func dedupeSorted(xs []int) []int {
	if len(xs) == 0 {
		return xs
	}
	out := []int{xs[0]}
	for _, v := range xs[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// rrIntervalsMs returns the RR intervals in milliseconds between consecutive
// peaks, given a sample period.
func rrIntervalsMs(peaks []int, stepMs float64) []float64 {
	if len(peaks) < 2 {
		return nil
	}
	out := make([]float64, 0, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		out = append(out, float64(peaks[i]-peaks[i-1])*stepMs)
	}
	return out
}
