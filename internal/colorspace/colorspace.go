// Package colorspace converts between the pixel formats a caller may supply
// (interleaved/planar RGB or BGR, planar YUV at 4:4:4/4:2:2/4:2:0) and the
// internal 4:4:4 planar representation the DWT and entropy stages operate
// on, using the BT.601 matrix (spec §4.2). The forward/reverse matrices here
// are adapted from the teacher's reversible/irreversible component
// transform (internal/mct's ForwardICT/InverseICT, which already use the
// same BT.601 coefficients); this package drops the lossless RCT path since
// spec.md specifies only the one BT.601 matrix.
package colorspace

import (
	"math"

	"github.com/jpegxs/go-jpegxs/internal/xserr"
)

// Format tags the layout of an input or output pixel buffer.
type Format int

const (
	YUV444p8 Format = iota
	YUV422p8
	YUV420p8
	RGB8
	BGR8
	RGB8Planar
)

// String returns the name of the format, for error messages and CLI flags.
func (f Format) String() string {
	switch f {
	case YUV444p8:
		return "YUV444p8"
	case YUV422p8:
		return "YUV422p8"
	case YUV420p8:
		return "YUV420p8"
	case RGB8:
		return "RGB8"
	case BGR8:
		return "BGR8"
	case RGB8Planar:
		return "RGB8Planar"
	default:
		return "Unknown"
	}
}

// ParseFormat resolves a format tag from its CLI/config string spelling.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "YUV444p8":
		return YUV444p8, nil
	case "YUV422p8":
		return YUV422p8, nil
	case "YUV420p8":
		return YUV420p8, nil
	case "RGB8":
		return RGB8, nil
	case "BGR8":
		return BGR8, nil
	case "RGB8Planar":
		return RGB8Planar, nil
	default:
		return 0, xserr.New(xserr.UnsupportedFormat, "colorspace: unrecognized format %q", s)
	}
}

// BufferSize returns the number of bytes a buffer of the given format must
// have for a W x H image, per the table in spec §3. It also validates the
// even-dimension preconditions for subsampled formats.
func BufferSize(w, h int, f Format) (int, error) {
	if w <= 0 || h <= 0 {
		return 0, xserr.New(xserr.InvalidBufferSize, "colorspace: non-positive dimensions %dx%d", w, h)
	}
	switch f {
	case YUV444p8, RGB8, BGR8, RGB8Planar:
		return 3 * w * h, nil
	case YUV422p8:
		if w%2 != 0 {
			return 0, xserr.New(xserr.UnsupportedFormat, "colorspace: YUV422p8 requires even width, got %d", w)
		}
		return 2 * w * h, nil
	case YUV420p8:
		if w%2 != 0 || h%2 != 0 {
			return 0, xserr.New(xserr.UnsupportedFormat, "colorspace: YUV420p8 requires even width and height, got %dx%d", w, h)
		}
		return 3 * w * h / 2, nil
	default:
		return 0, xserr.New(xserr.UnsupportedFormat, "colorspace: unrecognized format tag %d", int(f))
	}
}

// ValidateBuffer checks that buf's length matches exactly what (w, h, f)
// requires, failing fast before any computation touches the buffer.
func ValidateBuffer(buf []byte, w, h int, f Format) error {
	want, err := BufferSize(w, h, f)
	if err != nil {
		return err
	}
	if len(buf) != want {
		return xserr.New(xserr.InvalidBufferSize, "colorspace: buffer has %d bytes, format %s at %dx%d requires %d", len(buf), f, w, h, want)
	}
	return nil
}

// Planes444 holds an internal 4:4:4 planar representation: one W*H byte
// slice per component, always in Y, U, V (or R, G, B) order.
type Planes444 struct {
	W, H int
	P0   []byte
	P1   []byte
	P2   []byte
}

func newPlanes444(w, h int) Planes444 {
	return Planes444{
		W:  w,
		H:  h,
		P0: make([]byte, w*h),
		P1: make([]byte, w*h),
		P2: make([]byte, w*h),
	}
}

// ToYUV444 normalizes an input buffer of the given format to the internal
// 4:4:4 YUV representation (spec §4.7 encode step 2). RGB/BGR inputs are
// converted with the BT.601 matrix; subsampled YUV inputs have their chroma
// planes upsampled by nearest-neighbor (chroma duplication).
func ToYUV444(buf []byte, w, h int, f Format) (Planes444, error) {
	if err := ValidateBuffer(buf, w, h, f); err != nil {
		return Planes444{}, err
	}

	switch f {
	case YUV444p8:
		n := w * h
		out := newPlanes444(w, h)
		copy(out.P0, buf[0:n])
		copy(out.P1, buf[n:2*n])
		copy(out.P2, buf[2*n:3*n])
		return out, nil

	case YUV422p8:
		n := w * h
		cw := w / 2
		y := buf[0:n]
		u := buf[n : n+cw*h]
		v := buf[n+cw*h : n+2*cw*h]
		out := newPlanes444(w, h)
		copy(out.P0, y)
		upsampleHorizontal(u, out.P1, cw, h)
		upsampleHorizontal(v, out.P2, cw, h)
		return out, nil

	case YUV420p8:
		n := w * h
		cw, ch := w/2, h/2
		y := buf[0:n]
		u := buf[n : n+cw*ch]
		v := buf[n+cw*ch : n+2*cw*ch]
		out := newPlanes444(w, h)
		copy(out.P0, y)
		upsampleBlock(u, out.P1, cw, ch, w, h)
		upsampleBlock(v, out.P2, cw, ch, w, h)
		return out, nil

	case RGB8:
		out := newPlanes444(w, h)
		rgbToYUV(buf, out.P0, out.P1, out.P2, w*h, 0, 1, 2)
		return out, nil

	case BGR8:
		out := newPlanes444(w, h)
		rgbToYUV(buf, out.P0, out.P1, out.P2, w*h, 2, 1, 0)
		return out, nil

	case RGB8Planar:
		n := w * h
		out := newPlanes444(w, h)
		rgbPlanarToYUV(buf[0:n], buf[n:2*n], buf[2*n:3*n], out.P0, out.P1, out.P2)
		return out, nil

	default:
		return Planes444{}, xserr.New(xserr.UnsupportedFormat, "colorspace: unrecognized format tag %d", int(f))
	}
}

// FromYUV444 converts the internal 4:4:4 representation to a caller-
// requested output format (spec §4.7 decode step 6), downsampling chroma
// with box averaging where the target format requires it.
func FromYUV444(p Planes444, f Format) ([]byte, error) {
	w, h := p.W, p.H
	switch f {
	case YUV444p8:
		out := make([]byte, 3*w*h)
		n := w * h
		copy(out[0:n], p.P0)
		copy(out[n:2*n], p.P1)
		copy(out[2*n:3*n], p.P2)
		return out, nil

	case YUV422p8:
		if w%2 != 0 {
			return nil, xserr.New(xserr.UnsupportedFormat, "colorspace: YUV422p8 requires even width, got %d", w)
		}
		cw := w / 2
		out := make([]byte, 2*w*h)
		n := w * h
		copy(out[0:n], p.P0)
		downsampleHorizontal(p.P1, out[n:n+cw*h], w, h)
		downsampleHorizontal(p.P2, out[n+cw*h:n+2*cw*h], w, h)
		return out, nil

	case YUV420p8:
		if w%2 != 0 || h%2 != 0 {
			return nil, xserr.New(xserr.UnsupportedFormat, "colorspace: YUV420p8 requires even width and height, got %dx%d", w, h)
		}
		cw, ch := w/2, h/2
		out := make([]byte, 3*w*h/2)
		n := w * h
		copy(out[0:n], p.P0)
		downsampleBlock(p.P1, out[n:n+cw*ch], w, h)
		downsampleBlock(p.P2, out[n+cw*ch:n+2*cw*ch], w, h)
		return out, nil

	case RGB8:
		out := make([]byte, 3*w*h)
		yuvToRGB(p.P0, p.P1, p.P2, out, w*h, 0, 1, 2)
		return out, nil

	case BGR8:
		out := make([]byte, 3*w*h)
		yuvToRGB(p.P0, p.P1, p.P2, out, w*h, 2, 1, 0)
		return out, nil

	case RGB8Planar:
		n := w * h
		out := make([]byte, 3*n)
		yuvToRGBPlanar(p.P0, p.P1, p.P2, out[0:n], out[n:2*n], out[2*n:3*n])
		return out, nil

	default:
		return nil, xserr.New(xserr.UnsupportedFormat, "colorspace: unrecognized format tag %d", int(f))
	}
}

// BT.601 forward matrix (spec §4.2).
func rgbToYUVPixel(r, g, b byte) (y, u, v byte) {
	rf, gf, bf := float64(r), float64(g), float64(b)
	yf := 0.299*rf + 0.587*gf + 0.114*bf
	uf := -0.168736*rf - 0.331264*gf + 0.5*bf + 128
	vf := 0.5*rf - 0.418688*gf - 0.081312*bf + 128
	return clampRound(yf), clampRound(uf), clampRound(vf)
}

// BT.601 inverse matrix (spec §4.2).
func yuvToRGBPixel(y, u, v byte) (r, g, b byte) {
	yf, uf, vf := float64(y), float64(u)-128, float64(v)-128
	rf := yf + 1.402*vf
	gf := yf - 0.344136*uf - 0.714136*vf
	bf := yf + 1.772*uf
	return clampRound(rf), clampRound(gf), clampRound(bf)
}

func rgbToYUV(buf []byte, yp, up, vp []byte, n, ri, gi, bi int) {
	for i := 0; i < n; i++ {
		r, g, b := buf[3*i+ri], buf[3*i+gi], buf[3*i+bi]
		yp[i], up[i], vp[i] = rgbToYUVPixel(r, g, b)
	}
}

func yuvToRGB(yp, up, vp []byte, buf []byte, n, ri, gi, bi int) {
	for i := 0; i < n; i++ {
		r, g, b := yuvToRGBPixel(yp[i], up[i], vp[i])
		buf[3*i+ri], buf[3*i+gi], buf[3*i+bi] = r, g, b
	}
}

func rgbPlanarToYUV(rp, gp, bp, yp, up, vp []byte) {
	for i := range rp {
		yp[i], up[i], vp[i] = rgbToYUVPixel(rp[i], gp[i], bp[i])
	}
}

func yuvToRGBPlanar(yp, up, vp, rp, gp, bp []byte) {
	for i := range yp {
		rp[i], gp[i], bp[i] = yuvToRGBPixel(yp[i], up[i], vp[i])
	}
}

// upsampleHorizontal replicates each chroma sample across the horizontal
// pair of full-resolution columns it covers (4:2:2 -> 4:4:4).
func upsampleHorizontal(src []byte, dst []byte, cw, h int) {
	w := cw * 2
	for y := 0; y < h; y++ {
		for x := 0; x < cw; x++ {
			v := src[y*cw+x]
			dst[y*w+2*x] = v
			dst[y*w+2*x+1] = v
		}
	}
}

// upsampleBlock replicates each chroma sample across its 2x2 full-resolution
// block (4:2:0 -> 4:4:4).
func upsampleBlock(src []byte, dst []byte, cw, ch, w, h int) {
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			v := src[y*cw+x]
			dst[(2*y)*w+2*x] = v
			dst[(2*y)*w+2*x+1] = v
			dst[(2*y+1)*w+2*x] = v
			dst[(2*y+1)*w+2*x+1] = v
		}
	}
}

// downsampleHorizontal averages horizontally adjacent chroma pairs
// (4:4:4 -> 4:2:2).
func downsampleHorizontal(src []byte, dst []byte, w, h int) {
	cw := w / 2
	for y := 0; y < h; y++ {
		for x := 0; x < cw; x++ {
			a, b := src[y*w+2*x], src[y*w+2*x+1]
			dst[y*cw+x] = byte((int(a) + int(b) + 1) / 2)
		}
	}
}

// downsampleBlock averages 2x2 chroma blocks (4:4:4 -> 4:2:0).
func downsampleBlock(src []byte, dst []byte, w, h int) {
	cw, ch := w/2, h/2
	for y := 0; y < ch; y++ {
		for x := 0; x < cw; x++ {
			sum := int(src[(2*y)*w+2*x]) + int(src[(2*y)*w+2*x+1]) +
				int(src[(2*y+1)*w+2*x]) + int(src[(2*y+1)*w+2*x+1])
			dst[y*cw+x] = byte((sum + 2) / 4)
		}
	}
}

func clampRound(v float64) byte {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return byte(r)
}

// Center converts an unsigned 8-bit plane to a centered float32 plane in
// [-128, 127], the signed domain the DWT operates on (spec §3 invariants).
func Center(plane []byte) []float32 {
	out := make([]float32, len(plane))
	for i, v := range plane {
		out[i] = float32(v) - 128
	}
	return out
}

// Uncenter reverses Center, clamping to [0, 255] and rounding to the
// nearest integer.
func Uncenter(plane []float32) []byte {
	out := make([]byte, len(plane))
	for i, v := range plane {
		out[i] = clampRound(float64(v) + 128)
	}
	return out
}
