package offset

import "gonum.org/v1/gonum/dsp/fourier"

// fftConvolveFull computes the full discrete linear convolution of a and b
// via FFT, matching scipy.signal.fftconvolve(mode='full'): both sequences
// are zero-padded to n = len(a)+len(b)-1 so the circular convolution the FFT
// naturally computes equals the linear one, then multiplied in the
// frequency domain and inverted.
func fftConvolveFull(a, b []float64) []float64 {
	na, nb := len(a), len(b)
	if na == 0 || nb == 0 {
		return nil
	}
	n := na + nb - 1

	pa := make([]float64, n)
	copy(pa, a)
	pb := make([]float64, n)
	copy(pb, b)

	fft := fourier.NewFFT(n)
	ca := fft.Coefficients(nil, pa)
	cb := fft.Coefficients(nil, pb)

	prod := make([]complex128, len(ca))
	for i := range prod {
		prod[i] = ca[i] * cb[i]
	}

	out := make([]float64, n)
	return fft.Sequence(out, prod)
}

func argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}

func reversed(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[len(xs)-1-i] = v
	}
	return out
}

func bincount(vals []int) []float64 {
	max := 0
	for _, v := range vals {
		if v > max {
			max = v
		}
	}
	out := make([]float64, max+1)
	for _, v := range vals {
		if v >= 0 {
			out[v]++
		}
	}
	return out
}
