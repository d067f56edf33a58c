package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

// ErrTooFewSamples is returned when a spectrum cannot be estimated.
var ErrTooFewSamples = errors.New("analysis: need at least 4 evenly spaced samples")

// FFT is an iterative radix-2 transform. len(data) must be a power of two.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n&(n-1) != 0 {
		panic("fft requires power of 2 length")
	}

	out := make([]complex128, n)
	bits := 0
	for 1<<bits < n {
		bits++
	}
	for i, v := range data {
		out[reverseBits(i, bits)] = complex(v, 0)
	}

	for size := 2; size <= n; size <<= 1 {
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for base := 0; base < n; base += size {
			w := complex(1, 0)
			for k := 0; k < size/2; k++ {
				even := out[base+k]
				odd := w * out[base+k+size/2]
				out[base+k] = even + odd
				out[base+k+size/2] = even - odd
				w *= step
			}
		}
	}
	return out
}

func reverseBits(v, bits int) int {
	r := 0
	for i := 0; i < bits; i++ {
		r = r<<1 | v&1
		v >>= 1
	}
	return r
}

// PowerSpectrum is the magnitude of the first half of FFT(data).
func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// PadPow2 zero-pads data to the next power of two.
func PadPow2(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// DominantFrequency returns the frequency in Hz of the largest non-DC bin of
// the position spectrum. The mean is removed before the transform.
func DominantFrequency(traj *dynamo.Trajectory) (float64, error) {
	n := traj.Len()
	if n < 4 {
		return 0, ErrTooFewSamples
	}
	dt := float64(traj.Time[1] - traj.Time[0])
	if dt <= 0 {
		return 0, ErrTooFewSamples
	}

	data := dynamo.Float64(traj.Position)
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)
	for i := range data {
		data[i] -= mean
	}

	padded := PadPow2(data)
	ps := PowerSpectrum(padded)

	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}

	return float64(maxIdx) / (float64(len(padded)) * dt), nil
}
