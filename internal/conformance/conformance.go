// Package conformance packages the testable properties of spec §8 as
// reusable assertions, so both the package test suites and the benchmark
// collaborator in cmd/jpegxsbench can share one implementation of PSNR,
// perfect-reconstruction, and backend-equivalence checks instead of each
// hand-rolling its own, following the comparison helpers the teacher keeps
// in benchmark_compare.go rather than scattering them across test files.
package conformance

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// MaxAbsDiffFloat32 returns the largest |a[i]-b[i]| over equal-length a, b.
// A mismatched length returns +Inf so callers never mistake it for a real
// bound.
func MaxAbsDiffFloat32(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	max := 0.0
	for i := range a {
		d := math.Abs(float64(a[i]) - float64(b[i]))
		if d > max {
			max = d
		}
	}
	return max
}

// MaxAbsDiffByte returns the largest |int(a[i])-int(b[i])| over equal-length
// byte slices, for the color-conversion round-trip property (spec §8,
// "Color conversion round-trip").
func MaxAbsDiffByte(a, b []byte) int {
	if len(a) != len(b) {
		return math.MaxInt32
	}
	max := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

// PSNR computes the peak signal-to-noise ratio in dB between a reference and
// a test byte sequence of equal length, over an 8-bit-per-sample signal
// (spec §8 scenario 2, "PSNR(Y, Y') >= 30 dB"). A perfect match returns
// +Inf; mismatched lengths return -Inf.
func PSNR(reference, test []byte) float64 {
	if len(reference) != len(test) || len(reference) == 0 {
		return math.Inf(-1)
	}
	diffs := make([]float64, len(reference))
	for i := range reference {
		diffs[i] = float64(reference[i]) - float64(test[i])
	}
	mse := stat.PopVariance(diffs, nil)
	mean := stat.Mean(diffs, nil)
	// MSE is the second moment about zero, not about the mean: combine the
	// population variance of the diffs with the square of their mean to
	// recover it, since stat.PopVariance centers on the mean by construction.
	mse = mse + mean*mean
	if mse == 0 {
		return math.Inf(1)
	}
	const peak = 255.0
	return 10 * math.Log10(peak*peak/mse)
}

// BitstreamHasPrefix reports whether buf begins with the fixed marker
// preamble every produced codestream must carry (spec §8, "Codestream
// prefix"): SOC, CAP (length 2), and PIH's marker+length fields.
func BitstreamHasPrefix(buf []byte) bool {
	want := []byte{0xFF, 0x10, 0xFF, 0x50, 0x00, 0x02, 0xFF, 0x12, 0x00, 0x19}
	if len(buf) < len(want) {
		return false
	}
	for i, b := range want {
		if buf[i] != b {
			return false
		}
	}
	return true
}

// BitstreamHasSuffix reports whether buf ends with the EOC marker every
// produced codestream must carry (spec §8, "Codestream prefix").
func BitstreamHasSuffix(buf []byte) bool {
	if len(buf) < 2 {
		return false
	}
	return buf[len(buf)-2] == 0xFF && buf[len(buf)-1] == 0x11
}

// StrictlySmallerFraction reports, for two equal-length slices of bitstream
// sizes produced at a low and a high quality setting, the fraction of pairs
// where the low-quality size is strictly smaller (spec §8 scenario 7,
// "quality monotonicity ... in >= 80% of a panel").
func StrictlySmallerFraction(lowQualitySizes, highQualitySizes []int) float64 {
	if len(lowQualitySizes) == 0 || len(lowQualitySizes) != len(highQualitySizes) {
		return 0
	}
	smaller := 0
	for i := range lowQualitySizes {
		if lowQualitySizes[i] < highQualitySizes[i] {
			smaller++
		}
	}
	return float64(smaller) / float64(len(lowQualitySizes))
}
