package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// ComputePR measures the PR interval per beat: scan the window
// [QRS onset-200ms, QRS onset-40ms] forward from its earliest sample for the
// first sample deviating at least 50% of the segment's noise-baseline
// stddev from its leading median, then take the onset-minus-that-index span. Accept only PR in (80, 400) ms and report
// the mean.
func ComputePR(lead *domain.LeadSignal, beats []beatQRS, cfg config.MeasurementConfig) mdomain.MeasurementScalar {
	fs := cfgFS(lead)
	stepMs := 1000 / fs
	searchStart := msToSamples(cfg.PRSearchStartMs, fs)
	searchEnd := msToSamples(cfg.PRSearchEndMs, fs)

	var values []float64
	for _, b := range beats {
		lo := maxInt(0, b.Onset-searchStart)
		hi := maxInt(lo, b.Onset-searchEnd)
		if hi <= lo {
			continue
		}
		segment := lead.AmplitudeMV[lo:hi]
		leadingN := maxInt(1, len(segment)/5)
		leadingMedian := median(segment[:leadingN])
		segStdDev := stddev(segment)
		threshold := cfg.PRBaselineDeviationFraction * segStdDev

		pOnsetIdx := -1
		for i := lo; i < hi; i++ {
			if math.Abs(lead.AmplitudeMV[i]-leadingMedian) >= threshold {
				pOnsetIdx = i
				break
			}
		}
		if pOnsetIdx == -1 {
			continue
		}
		pr := float64(b.Onset-pOnsetIdx) * stepMs
		if pr > cfg.PRMinMs && pr < cfg.PRMaxMs {
			values = append(values, pr)
		}
	}

	if len(values) == 0 {
		return mdomain.ZeroScalar("ms", "pr_baseline_deviation_backsearch")
	}
	return mdomain.MeasurementScalar{
		Value:      mean(values),
		Unit:       "ms",
		Method:     "pr_baseline_deviation_backsearch",
		Confidence: math.Min(1, float64(len(values))/3.0),
	}
}
