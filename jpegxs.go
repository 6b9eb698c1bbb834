// Package jpegxs implements the core of a still-image codec for the JPEG XS
// family of tools (ISO/IEC 21122-1): bit I/O, BT.601 color transform, a
// single-level reversible 5/3 DWT with scalar/SIMD/GPU backends,
// quantization, an RLE+VLC entropy coder, and a codestream framer.
//
// The public surface (Encode/Decode/Inspect plus the Config/Bitstream/Image
// types) follows the teacher's own jpeg2000.go entry points in shape: a
// couple of top-level functions taking an options struct and returning an
// owned result, rather than a stateful session object.
package jpegxs

import (
	"github.com/jpegxs/go-jpegxs/internal/codestream"
	"github.com/jpegxs/go-jpegxs/internal/colorspace"
	"github.com/jpegxs/go-jpegxs/internal/pipeline"
)

// Format identifies the layout of a pixel buffer (spec §3).
type Format = colorspace.Format

// Recognized pixel formats.
const (
	YUV444p8   = colorspace.YUV444p8
	YUV422p8   = colorspace.YUV422p8
	YUV420p8   = colorspace.YUV420p8
	RGB8       = colorspace.RGB8
	BGR8       = colorspace.BGR8
	RGB8Planar = colorspace.RGB8Planar
)

// ParseFormat resolves a format tag from its CLI/config string spelling.
func ParseFormat(s string) (Format, error) { return colorspace.ParseFormat(s) }

// Profile is the conformance profile a picture targets.
type Profile int

const (
	Light Profile = iota
	Main
	High
)

func (p Profile) String() string {
	switch p {
	case Light:
		return "Light"
	case Main:
		return "Main"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// profileLevels is the static profile/level validity table (spec §6).
var profileLevels = map[Profile]map[int]bool{
	Light: {1: true, 2: true},
	Main:  {1: true, 2: true, 3: true, 4: true},
	High:  {1: true, 2: true, 3: true, 4: true, 5: true},
}

// ValidateProfileLevel checks (profile, level) against the static validity
// table, returning InvalidProfileLevel on any combination not listed.
func ValidateProfileLevel(p Profile, level int) error {
	levels, ok := profileLevels[p]
	if !ok || !levels[level] {
		return New(InvalidProfileLevel, "jpegxs: profile %s does not admit level %d", p, level)
	}
	return nil
}

// ImageView is an immutable borrow of a pixel buffer with its declared
// dimensions and format. It does not outlive the Encode call it is passed
// to (spec §3 "Ownership").
type ImageView struct {
	Pixels []byte
	Width  int
	Height int
	Format Format
}

// GPUOpener constructs a GPU acceleration device on demand. Backend
// selection does not look at the opener: with AccelCaps.GPU set and an image
// at or above the GPU threshold, a nil opener makes the call fail with
// BackendUnavailable.
type GPUOpener = pipeline.GPUOpener

// AccelCaps reports which acceleration backends are available to the
// dispatch layer (spec §4.8).
type AccelCaps = pipeline.Caps

// EncoderConfig configures a single Encode call.
type EncoderConfig struct {
	Quality   float64
	Profile   Profile
	Level     int
	Caps      AccelCaps
	GPUOpener GPUOpener
}

// Bitstream is an owned, framed codestream plus its bit length.
type Bitstream struct {
	Bytes     []byte
	BitLength int
}

// Encode normalizes img to internal planes, runs the forward DWT,
// quantizes, entropy-codes, and frames the result (spec §4.7 "Encode").
// An error from the selected DWT backend is returned as is; no weaker
// backend is tried in its place.
func Encode(img ImageView, cfg EncoderConfig) (Bitstream, error) {
	if err := ValidateProfileLevel(cfg.Profile, cfg.Level); err != nil {
		return Bitstream{}, err
	}
	if cfg.Quality <= 0 || cfg.Quality > 1 {
		return Bitstream{}, New(InvalidQuantization, "jpegxs: quality %v not in (0, 1]", cfg.Quality)
	}

	out, err := pipeline.Encode(img.Pixels, pipeline.EncodeParams{
		Width:     img.Width,
		Height:    img.Height,
		Format:    img.Format,
		Quality:   cfg.Quality,
		Caps:      cfg.Caps,
		GPUOpener: cfg.GPUOpener,
	})
	if err != nil {
		return Bitstream{}, err
	}
	return Bitstream{Bytes: out, BitLength: len(out) * 8}, nil
}

// DecoderConfig configures a single Decode call.
type DecoderConfig struct {
	StrictMode bool
	Caps       AccelCaps
	GPUOpener  GPUOpener
}

// Image is an owned, decoded pixel buffer plus its dimensions and format.
type Image struct {
	Pixels []byte
	Width  int
	Height int
	Format Format
}

// Decode parses the marker sequence, entropy-decodes the payload,
// dequantizes, runs the inverse DWT, and converts to outputFormat
// (spec §4.7 "Decode"). An error from the selected DWT backend is returned
// as is; no weaker backend is tried in its place. cfg.StrictMode is not
// consulted.
func Decode(bs Bitstream, cfg DecoderConfig, outputFormat Format) (Image, error) {
	res, err := pipeline.Decode(bs.Bytes, pipeline.DecodeParams{
		OutputFormat: outputFormat,
		Caps:         cfg.Caps,
		GPUOpener:    cfg.GPUOpener,
	})
	if err != nil {
		return Image{}, err
	}
	return Image{Pixels: res.Pixels, Width: res.Width, Height: res.Height, Format: outputFormat}, nil
}

// MarkerInfo names a marker tag and the byte offset at which it begins.
type MarkerInfo struct {
	Tag    string
	Offset int
}

// Inspection is the read-only result of Inspect: recovered dimensions,
// component count, quantization vector, and the marker list found.
type Inspection struct {
	Width         int
	Height        int
	NumComponents int
	QP            []uint8
	Markers       []MarkerInfo
}

// Inspect performs a read-only parse of bs, returning (W, H, Nc, QP[]) and
// the markers found, without decoding the entropy payload (spec §6
// "Inspector operation"). Marker offsets come directly from the parse that
// recovers the header fields, not from a secondary byte scan: scanning the
// payload bytes for marker-shaped pairs would risk false positives wherever
// an entropy-coded byte happens to equal a tag.
func Inspect(bs Bitstream) (Inspection, error) {
	hdr, _, err := codestream.Parse(bs.Bytes)
	if err != nil {
		return Inspection{}, err
	}
	markers := make([]MarkerInfo, len(hdr.Markers))
	for i, m := range hdr.Markers {
		markers[i] = MarkerInfo{Tag: m.Tag.String(), Offset: m.Offset}
	}
	return Inspection{
		Width:         int(hdr.Width),
		Height:        int(hdr.Height),
		NumComponents: int(hdr.NumComponents),
		QP:            hdr.QP,
		Markers:       markers,
	}, nil
}

// DefaultAccelCaps reports no SIMD or GPU acceleration available, the safe
// default for callers that have not probed runtime capabilities.
func DefaultAccelCaps() AccelCaps {
	return AccelCaps{}
}
