package application

import (
	"math"

	"ecgdigitizer/internal/digitizer/domain"
)

// qrsOnsetIndex finds the QRS onset by searching backward from the R peak
// for the first derivative-magnitude crossing of 20% of the local max
//.
func qrsOnsetIndex(lead *domain.LeadSignal, rIdx int, fractionOfLocalMax float64, searchSamples int) int {
	x := lead.AmplitudeMV
	lo := maxInt(0, rIdx-searchSamples)
	localMax := 0.0
	for i := lo; i < rIdx && i+1 < len(x); i++ {
		d := math.Abs(x[i+1] - x[i])
		if d > localMax {
			localMax = d
		}
	}
	threshold := fractionOfLocalMax * localMax
	onset := rIdx
	for i := rIdx; i > lo; i-- {
		if i-1 < 0 {
			break
		}
		d := math.Abs(x[i] - x[i-1])
		if d < threshold {
			onset = i
			break
		}
		onset = i - 1
	}
	return onset
}

// qrsOffsetIndex finds the QRS offset by searching forward from the R peak
// for the first sample where derivative magnitude drops below the given
// fraction of its local max.
func qrsOffsetIndex(lead *domain.LeadSignal, rIdx int, fractionOfLocalMax float64, searchSamples int) int {
	x := lead.AmplitudeMV
	hi := minInt(len(x)-1, rIdx+searchSamples)
	localMax := 0.0
	for i := rIdx; i < hi; i++ {
		d := math.Abs(x[i+1] - x[i])
		if d > localMax {
			localMax = d
		}
	}
	threshold := fractionOfLocalMax * localMax
	offset := hi
	for i := rIdx; i < hi; i++ {
		d := math.Abs(x[i+1] - x[i])
		if d < threshold {
			offset = i
			break
		}
	}
	return offset
}

func msToSamples(ms float64, fs float64) int {
	return int(math.Round(ms / 1000 * fs))
}

func cfgFS(lead *domain.LeadSignal) float64 {
	if lead == nil || lead.TargetHz <= 0 {
		return 500
	}
	return lead.TargetHz
}
