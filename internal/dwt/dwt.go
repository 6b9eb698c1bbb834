// Package dwt implements the single-level reversible 5/3 discrete wavelet
// transform (spec §4.3), with symmetric boundary extension, over float32
// coefficient planes. It is the scalar reference backend; internal/accel
// dispatches to this, to the SIMD-unrolled variant in dwt_simd.go, or to a
// GPU backend, all bit-accurate with each other to within the tolerance
// spec §4.3 allows.
//
// The lifting structure mirrors the teacher's integer 5/3 implementation
// (mrjoshuak/go-jpeg2000's internal/dwt.Forward53/Inverse53): predict on odd
// indices, update on even indices, then separate low-pass/high-pass samples
// into the first/second half of the buffer.
package dwt

import (
	"math"

	"github.com/jpegxs/go-jpegxs/internal/xserr"
)

// Forward1D performs the forward 5/3 lifting transform on data[:n] in
// place. After the call, data[0:ceil(n/2)] holds low-pass coefficients and
// data[ceil(n/2):n] holds high-pass coefficients.
func Forward1D(data []float32, n int) {
	if n < 2 {
		return
	}

	// Predict: odd indices become high-pass. Symmetric extension at the
	// right boundary (spec §4.3 step 1).
	for i := 1; i < n; i += 2 {
		left := data[i-1]
		var right float32
		if i+1 < n {
			right = data[i+1]
		} else {
			right = data[n-2] // symmetric extension: X[i+1] := X[N-2]
		}
		data[i] -= (left + right) / 2
	}

	// Update: even indices become low-pass. Out-of-range neighbors
	// contribute zero (spec §4.3 step 2).
	for i := 0; i < n; i += 2 {
		var left, right float32
		if i-1 >= 0 {
			left = data[i-1]
		}
		if i+1 < n {
			right = data[i+1]
		}
		data[i] += floorDiv4(left + right + 2)
	}

	separate(data, n)
}

// Inverse1D reverses Forward1D.
func Inverse1D(data []float32, n int) {
	if n < 2 {
		return
	}

	interleave(data, n)

	// Undo update.
	for i := 0; i < n; i += 2 {
		var left, right float32
		if i-1 >= 0 {
			left = data[i-1]
		}
		if i+1 < n {
			right = data[i+1]
		}
		data[i] -= floorDiv4(left + right + 2)
	}

	// Undo predict.
	for i := 1; i < n; i += 2 {
		left := data[i-1]
		var right float32
		if i+1 < n {
			right = data[i+1]
		} else {
			right = data[n-2]
		}
		data[i] += (left + right) / 2
	}
}

// floorDiv4 computes floor(x/4) in float32, matching the integer lifting
// formula's rounding behavior (spec §4.3 step 2).
func floorDiv4(x float32) float32 {
	return float32(math.Floor(float64(x) / 4))
}

// separate rearranges an interleaved buffer (even, odd, even, odd, ...)
// into low-pass-first, high-pass-second order.
func separate(data []float32, n int) {
	tmp := make([]float32, n)
	half := (n + 1) / 2
	for i, j := 0, 0; i < n; i, j = i+2, j+1 {
		tmp[j] = data[i]
	}
	for i, j := 1, half; i < n; i, j = i+2, j+1 {
		tmp[j] = data[i]
	}
	copy(data[:n], tmp)
}

// interleave reverses separate.
func interleave(data []float32, n int) {
	tmp := make([]float32, n)
	copy(tmp, data[:n])
	half := (n + 1) / 2
	for i, j := 0, 0; j < half; i, j = i+2, j+1 {
		data[i] = tmp[j]
	}
	for i, j := 1, half; j < n; i, j = i+2, j+1 {
		data[i] = tmp[j]
	}
}

// Forward2D applies Forward1D to every row, then to every column of the
// row-transformed buffer (spec §4.3 "2-D transform"). data is row-major,
// length must equal w*h.
func Forward2D(data []float32, w, h int) error {
	if len(data) != w*h {
		return xserr.New(xserr.InvalidBufferSize, "dwt: buffer length %d does not match %dx%d", len(data), w, h)
	}
	for y := 0; y < h; y++ {
		Forward1D(data[y*w:(y+1)*w], w)
	}
	col := make([]float32, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = data[y*w+x]
		}
		Forward1D(col, h)
		for y := 0; y < h; y++ {
			data[y*w+x] = col[y]
		}
	}
	return nil
}

// Inverse2D reverses Forward2D: columns first, then rows.
func Inverse2D(data []float32, w, h int) error {
	if len(data) != w*h {
		return xserr.New(xserr.InvalidBufferSize, "dwt: buffer length %d does not match %dx%d", len(data), w, h)
	}
	col := make([]float32, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = data[y*w+x]
		}
		Inverse1D(col, h)
		for y := 0; y < h; y++ {
			data[y*w+x] = col[y]
		}
	}
	for y := 0; y < h; y++ {
		Inverse1D(data[y*w:(y+1)*w], w)
	}
	return nil
}
