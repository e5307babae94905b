package application

import (
	"math"

	"ecgdigitizer/internal/config"
	"ecgdigitizer/internal/digitizer/domain"
	mdomain "ecgdigitizer/internal/measurement/domain"
)

// beatQRS holds per-beat onset/offset sample indices, used by PR, QRS, QT,
// and ST measurements alike so they share one onset/offset pass.
type beatQRS struct {
	RIdx   int
	Onset  int
	Offset int
}

// computeBeatQRS locates the QRS onset/offset for every detected R peak.
func computeBeatQRS(lead *domain.LeadSignal, peaks []int, cfg config.MeasurementConfig) []beatQRS {
	fs := cfgFS(lead)
	searchOnset := msToSamples(cfg.PRSearchStartMs, fs)
	searchOffset := msToSamples(cfg.QRSMaxMs, fs)
	out := make([]beatQRS, 0, len(peaks))
	for _, r := range peaks {
		onset := qrsOnsetIndex(lead, r, cfg.PROnsetBackSearchFraction, searchOnset)
		offset := qrsOffsetIndex(lead, r, cfg.QRSOffsetDerivativeFraction, searchOffset)
		out = append(out, beatQRS{RIdx: r, Onset: onset, Offset: offset})
	}
	return out
}

// ComputeQRS measures QRS duration per beat and accepts only beats in
// (40, 250) ms, reporting the mean.
func ComputeQRS(lead *domain.LeadSignal, beats []beatQRS, cfg config.MeasurementConfig) mdomain.MeasurementScalar {
	fs := cfgFS(lead)
	stepMs := 1000 / fs
	var durations []float64
	for _, b := range beats {
		d := float64(b.Offset-b.Onset) * stepMs
		if d > cfg.QRSMinMs && d < cfg.QRSMaxMs {
			durations = append(durations, d)
		}
	}
	if len(durations) == 0 {
		return mdomain.ZeroScalar("ms", "qrs_onset_offset_derivative_threshold")
	}
	return mdomain.MeasurementScalar{
		Value:      mean(durations),
		Unit:       "ms",
		Method:     "qrs_onset_offset_derivative_threshold",
		Confidence: math.Min(1, float64(len(durations))/3.0),
	}
}
