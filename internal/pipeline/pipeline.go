// Package pipeline orchestrates the encode and decode sequences over
// colorspace, dwt/accel, quant, entropy, and codestream (spec §4.7).
//
// The EncodeParams/DecodeParams shape (a small config held by value, one
// public entry point each) mirrors the teacher's own encoder.go/decoder.go
// orchestration structs, generalized from the teacher's J2K tile/component
// loop to this core's fixed three-plane, single-slice flow.
package pipeline

import (
	"github.com/jpegxs/go-jpegxs/internal/accel"
	"github.com/jpegxs/go-jpegxs/internal/codestream"
	"github.com/jpegxs/go-jpegxs/internal/colorspace"
	"github.com/jpegxs/go-jpegxs/internal/entropy"
	"github.com/jpegxs/go-jpegxs/internal/quant"
	"github.com/jpegxs/go-jpegxs/internal/xserr"
)

// Caps reports acceleration availability, passed through to internal/accel.
type Caps = accel.Caps

// GPUOpener constructs a GPU device, passed through to internal/accel.
type GPUOpener = accel.Opener

// EncodeParams holds everything Encode needs beyond the raw pixel buffer.
type EncodeParams struct {
	Width, Height int
	Format        colorspace.Format
	Quality       float64
	Caps          Caps
	GPUOpener     GPUOpener
}

// Encode runs the seven-step encode sequence and returns the framed
// codestream bytes.
func Encode(buf []byte, p EncodeParams) ([]byte, error) {
	if err := colorspace.ValidateBuffer(buf, p.Width, p.Height, p.Format); err != nil {
		return nil, err
	}

	planes, err := colorspace.ToYUV444(buf, p.Width, p.Height, p.Format)
	if err != nil {
		return nil, err
	}

	y := colorspace.Center(planes.P0)
	u := colorspace.Center(planes.P1)
	v := colorspace.Center(planes.P2)

	backend := accel.Select(p.Width, p.Height, p.Caps)
	for _, plane := range [][]float32{y, u, v} {
		if err := accel.Run(backend, plane, p.Width, p.Height, false, p.GPUOpener); err != nil {
			return nil, err
		}
	}

	qpVector := quant.Vector(p.Quality)
	qpY := qpVector[0]
	qpUV := qpVector[1]
	if err := quant.Quantize(y, qpY); err != nil {
		return nil, err
	}
	if err := quant.Quantize(u, qpUV); err != nil {
		return nil, err
	}
	if err := quant.Quantize(v, qpUV); err != nil {
		return nil, err
	}

	coeffs := make([]int32, 0, 3*p.Width*p.Height)
	coeffs = appendAsInt32(coeffs, y)
	coeffs = appendAsInt32(coeffs, u)
	coeffs = appendAsInt32(coeffs, v)

	payload, err := entropy.Encode(coeffs)
	if err != nil {
		return nil, err
	}

	return codestream.Emit(uint16(p.Width), uint16(p.Height), 3, qpVector[:], payload)
}

// DecodeParams holds everything Decode needs beyond the framed bitstream.
type DecodeParams struct {
	OutputFormat colorspace.Format
	Caps         Caps
	GPUOpener    GPUOpener
}

// DecodeResult is the recovered image: its pixel buffer plus the dimensions
// and format the caller asked for.
type DecodeResult struct {
	Pixels []byte
	Width  int
	Height int
	Format colorspace.Format
}

// Decode runs the six-step decode sequence and returns the reconstructed
// image in the caller-requested output format.
func Decode(bitstream []byte, p DecodeParams) (DecodeResult, error) {
	hdr, payload, err := codestream.Parse(bitstream)
	if err != nil {
		return DecodeResult{}, err
	}
	if hdr.NumComponents != 3 {
		return DecodeResult{}, xserr.New(xserr.UnsupportedFormat, "pipeline: decode requires exactly 3 components, got %d", hdr.NumComponents)
	}
	if len(hdr.QP) < 2 {
		return DecodeResult{}, xserr.New(xserr.InvalidQuantization, "pipeline: recovered QP vector has %d entries, need at least 2", len(hdr.QP))
	}

	w, h := int(hdr.Width), int(hdr.Height)
	n := w * h

	coeffs, err := entropy.Decode(payload)
	if err != nil {
		return DecodeResult{}, err
	}
	if len(coeffs) != 3*n {
		return DecodeResult{}, xserr.New(xserr.InvalidBufferSize, "pipeline: decoded %d coefficients, want %d for %dx%d*3", len(coeffs), 3*n, w, h)
	}

	y := asFloat32(coeffs[0:n])
	u := asFloat32(coeffs[n : 2*n])
	v := asFloat32(coeffs[2*n : 3*n])

	qpY, qpUV := hdr.QP[0], hdr.QP[1]
	if err := quant.Dequantize(y, qpY); err != nil {
		return DecodeResult{}, err
	}
	if err := quant.Dequantize(u, qpUV); err != nil {
		return DecodeResult{}, err
	}
	if err := quant.Dequantize(v, qpUV); err != nil {
		return DecodeResult{}, err
	}

	backend := accel.Select(w, h, p.Caps)
	for _, plane := range [][]float32{y, u, v} {
		if err := accel.Run(backend, plane, w, h, true, p.GPUOpener); err != nil {
			return DecodeResult{}, err
		}
	}

	planes := colorspace.Planes444{
		W:  w,
		H:  h,
		P0: colorspace.Uncenter(y),
		P1: colorspace.Uncenter(u),
		P2: colorspace.Uncenter(v),
	}

	pixels, err := colorspace.FromYUV444(planes, p.OutputFormat)
	if err != nil {
		return DecodeResult{}, err
	}

	return DecodeResult{Pixels: pixels, Width: w, Height: h, Format: p.OutputFormat}, nil
}

func appendAsInt32(dst []int32, src []float32) []int32 {
	for _, v := range src {
		dst = append(dst, int32(v))
	}
	return dst
}

func asFloat32(src []int32) []float32 {
	out := make([]float32, len(src))
	for i, v := range src {
		out[i] = float32(v)
	}
	return out
}
