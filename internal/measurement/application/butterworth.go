package application

import (
	"math"
	"math/cmplx"
)

// butterworthCoeffs holds a digital IIR filter's numerator/denominator
// coefficients in direct-form-II: a[0]=1.
type butterworthCoeffs struct {
	B []float64
	A []float64
}

// designButterworthLowpass designs an order-n digital Butterworth lowpass
// filter with cutoff cutoffHz at sample rate fsHz, via the standard analog
// prototype + bilinear-transform construction (no external DSP library).
func designButterworthLowpass(order int, cutoffHz, fsHz float64) butterworthCoeffs {
	prototype := analogButterworthPoles(order)
	wc := prewarp(cutoffHz, fsHz)
	poles := make([]complex128, order)
	for i, p := range prototype {
		poles[i] = p * complex(wc, 0)
	}
	// H(s) = wc^n / prod(s - poles); no finite zeros.
	zeros := []complex128{}
	gain := math.Pow(wc, float64(order))
	return bilinearTransform(zeros, poles, gain, fsHz)
}

// designButterworthHighpass designs an order-n digital Butterworth
// highpass filter via the lowpass-to-highpass s -> wc/s prototype transform
// followed by the bilinear transform.
func designButterworthHighpass(order int, cutoffHz, fsHz float64) butterworthCoeffs {
	prototype := analogButterworthPoles(order)
	wc := prewarp(cutoffHz, fsHz)
	poles := make([]complex128, order)
	gain := complex(1, 0)
	for i, p := range prototype {
		poles[i] = complex(wc, 0) / p
		gain *= -p
	}
	zeros := make([]complex128, order) // all at s=0
	return bilinearTransform(zeros, poles, real(gain), fsHz)
}

// analogButterworthPoles returns the n left-half-plane poles of the
// normalized (cutoff=1 rad/s) analog Butterworth prototype.
func analogButterworthPoles(n int) []complex128 {
	poles := make([]complex128, n)
	for k := 0; k < n; k++ {
		theta := math.Pi * (2*float64(k) + float64(n) + 1) / (2 * float64(n))
		poles[k] = cmplx.Exp(complex(0, theta))
	}
	return poles
}

// prewarp maps a desired digital cutoff frequency to its pre-warped analog
// equivalent for the bilinear transform.
func prewarp(cutoffHz, fsHz float64) float64 {
	return 2 * fsHz * math.Tan(math.Pi*cutoffHz/fsHz)
}

// bilinearTransform maps analog zeros/poles/gain to digital-domain
// coefficients via z = (2*fs + s)/(2*fs - s), then expands the resulting
// root sets into real polynomial coefficients.
func bilinearTransform(zeros, poles []complex128, gain, fsHz float64) butterworthCoeffs {
	twoFs := 2 * fsHz
	dzeros := make([]complex128, len(zeros))
	for i, z := range zeros {
		dzeros[i] = (complex(twoFs, 0) + z) / (complex(twoFs, 0) - z)
	}
	dpoles := make([]complex128, len(poles))
	for i, p := range poles {
		dpoles[i] = (complex(twoFs, 0) + p) / (complex(twoFs, 0) - p)
	}

	// Overall digital gain: H(s) gain scaled by prod(2fs - s_i)/prod(2fs - p_i) at the bilinear substitution.
	numGainFactor := complex(1, 0)
	for range zeros {
		numGainFactor *= complex(twoFs, 0)
	}
	denGainFactor := complex(1, 0)
	for _, p := range poles {
		denGainFactor *= (complex(twoFs, 0) - p)
	}
	k := complex(gain, 0) * numGainFactor / denGainFactor

	bPoly := polyFromRoots(dzeros)
	aPoly := polyFromRoots(dpoles)

	// Pad numerator with leading zeros if it has fewer coefficients than
	// the denominator (more poles than zeros, the usual case).
	for len(bPoly) < len(aPoly) {
		bPoly = append([]complex128{0}, bPoly...)
	}

	b := make([]float64, len(bPoly))
	a := make([]float64, len(aPoly))
	for i, c := range bPoly {
		b[i] = real(c * k)
	}
	for i, c := range aPoly {
		a[i] = real(c)
	}
	// Normalize so a[0] == 1.
	if a[0] != 0 && a[0] != 1 {
		a0 := a[0]
		for i := range a {
			a[i] /= a0
		}
		for i := range b {
			b[i] /= a0
		}
	}
	return butterworthCoeffs{B: b, A: a}
}

// polyFromRoots expands prod(x - r_i) into coefficients, highest degree
// first (coefficient[0] = 1 for a monic polynomial).
func polyFromRoots(roots []complex128) []complex128 {
	coeffs := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(coeffs)+1)
		for i, c := range coeffs {
			next[i] += c
			next[i+1] -= c * r
		}
		coeffs = next
	}
	return coeffs
}

// applyFilter runs x through the direct-form-II transposed IIR filter
// defined by coeffs.
func applyFilter(x []float64, coeffs butterworthCoeffs) []float64 {
	b, a := coeffs.B, coeffs.A
	n := len(a)
	z := make([]float64, n-1)
	out := make([]float64, len(x))
	for i, xi := range x {
		y := b[0]*xi + z[0]
		for j := 1; j < len(z); j++ {
			z[j-1] = b[j]*xi + z[j] - a[j]*y
		}
		if len(z) > 0 {
			z[len(z)-1] = b[len(b)-1]*xi - a[len(a)-1]*y
		}
		out[i] = y
	}
	return out
}

// filtfilt applies coeffs forward then backward to achieve zero-phase
// filtering, mirroring scipy.signal.filtfilt's usage in the reference
// pipeline.
func filtfilt(x []float64, coeffs butterworthCoeffs) []float64 {
	forward := applyFilter(x, coeffs)
	reversed := reverseFloat(forward)
	backward := applyFilter(reversed, coeffs)
	return reverseFloat(backward)
}

func reverseFloat(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}

// bandpassFilter cascades a highpass at lowHz and a lowpass at highHz, each
// of the given order, approximating an order-3 Butterworth bandpass
//.
func bandpassFilter(x []float64, lowHz, highHz, fsHz float64, order int) []float64 {
	hp := designButterworthHighpass(order, lowHz, fsHz)
	lp := designButterworthLowpass(order, highHz, fsHz)
	stage1 := filtfilt(x, hp)
	return filtfilt(stage1, lp)
}
