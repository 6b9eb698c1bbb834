// Package quant maps a scalar quality parameter to a quantization vector and
// performs scalar quantize/dequantize of DWT coefficients.
//
// The step table and vector layout are new relative to the teacher (which
// derives per-subband quantization implicitly from its MQ/HT coders'
// bitplane counts rather than from an explicit QP table), but the
// round/divide shape of Quantize/Dequantize mirrors the scalar-division
// style already used by internal/colorspace's clampRound and
// internal/dwt's floorDiv4: small, table-driven numeric helpers with a
// single well-named entry point.
package quant

import (
	"math"

	"github.com/jpegxs/go-jpegxs/internal/xserr"
)

// Subbands is the length of the quantization vector this core always
// produces: a base QP replicated across a four-level DWT descriptor's worth
// of subbands, even though the transform executed is single-level (spec
// §4.4; only QP[0] and QP[1] are ever consulted for coefficient data).
const Subbands = 13

type step struct {
	minQuality float64
	qp         uint8
}

// table is the quality→QP step function, most selective first.
var table = []step{
	{0.90, 1},
	{0.80, 2},
	{0.70, 3},
	{0.60, 4},
	{0.50, 6},
	{0.40, 8},
	{0.30, 12},
	{0.20, 16},
	{0.10, 24},
	{0.00, 32},
}

// BaseQP maps a quality parameter q in (0, 1] to the base quantization
// parameter by the monotone step function in spec §4.4. Values of q outside
// (0, 1] are clamped to the nearest bound before lookup.
func BaseQP(q float64) uint8 {
	if q > 1 {
		q = 1
	}
	if q <= 0 {
		return table[len(table)-1].qp
	}
	for _, s := range table {
		if q >= s.minQuality {
			return s.qp
		}
	}
	return table[len(table)-1].qp
}

// Vector returns the Subbands-length quantization vector for a quality
// parameter: the base QP replicated across every subband slot.
func Vector(q float64) [Subbands]uint8 {
	qp := BaseQP(q)
	var v [Subbands]uint8
	for i := range v {
		v[i] = qp
	}
	return v
}

// Quantize computes round(c/QP) for each coefficient in place. QP = 0 is
// rejected with InvalidQuantization.
func Quantize(coeffs []float32, qp uint8) error {
	if qp == 0 {
		return xserr.New(xserr.InvalidQuantization, "quant: QP must be nonzero")
	}
	d := float64(qp)
	for i, c := range coeffs {
		coeffs[i] = float32(math.Round(float64(c) / d))
	}
	return nil
}

// Dequantize multiplies each coefficient by QP in place. QP = 0 is rejected
// with InvalidQuantization.
func Dequantize(coeffs []float32, qp uint8) error {
	if qp == 0 {
		return xserr.New(xserr.InvalidQuantization, "quant: QP must be nonzero")
	}
	d := float32(qp)
	for i, c := range coeffs {
		coeffs[i] = c * d
	}
	return nil
}
