package pipeline

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jpegxs/go-jpegxs/internal/colorspace"
)

// decodedShape captures the metadata fields of a DecodeResult that a
// round-trip must preserve exactly, leaving the lossy Pixels slice out of
// the comparison.
type decodedShape struct {
	Width, Height int
	Format        colorspace.Format
}

func shapeOf(r DecodeResult) decodedShape {
	return decodedShape{Width: r.Width, Height: r.Height, Format: r.Format}
}

func makeRGB(w, h int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, 3*w*h)
	rng.Read(buf)
	return buf
}

func TestEncodeDecode_RoundTrip_HighQuality(t *testing.T) {
	w, h := 16, 16
	orig := makeRGB(w, h, 1)

	bitstream, err := Encode(orig, EncodeParams{
		Width: w, Height: h, Format: colorspace.RGB8, Quality: 0.95,
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	res, err := Decode(bitstream, DecodeParams{OutputFormat: colorspace.RGB8})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	wantShape := decodedShape{Width: w, Height: h, Format: colorspace.RGB8}
	if diff := cmp.Diff(wantShape, shapeOf(res)); diff != "" {
		t.Fatalf("decoded shape mismatch (-want +got):\n%s", diff)
	}
	if len(res.Pixels) != len(orig) {
		t.Fatalf("len(Pixels) = %d, want %d", len(res.Pixels), len(orig))
	}

	var maxDiff int
	for i := range orig {
		d := int(orig[i]) - int(res.Pixels[i])
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	if maxDiff > 40 {
		t.Fatalf("max pixel diff %d too large at quality 0.95", maxDiff)
	}
}

func TestEncodeDecode_QualityMonotonicity(t *testing.T) {
	w, h := 16, 16
	orig := makeRGB(w, h, 2)

	errAt := func(q float64) int {
		bitstream, err := Encode(orig, EncodeParams{Width: w, Height: h, Format: colorspace.RGB8, Quality: q})
		if err != nil {
			t.Fatalf("Encode(q=%v): %v", q, err)
		}
		res, err := Decode(bitstream, DecodeParams{OutputFormat: colorspace.RGB8})
		if err != nil {
			t.Fatalf("Decode(q=%v): %v", q, err)
		}
		sum := 0
		for i := range orig {
			d := int(orig[i]) - int(res.Pixels[i])
			if d < 0 {
				d = -d
			}
			sum += d
		}
		return sum
	}

	lowQErr := errAt(0.1)
	highQErr := errAt(0.95)
	if highQErr > lowQErr {
		t.Fatalf("higher quality produced larger total error: low=%d high=%d", lowQErr, highQErr)
	}
}

func TestEncode_InvalidBufferSize(t *testing.T) {
	_, err := Encode(make([]byte, 3), EncodeParams{Width: 4, Height: 4, Format: colorspace.RGB8, Quality: 0.8})
	if err == nil {
		t.Fatal("expected InvalidBufferSize error")
	}
}

func TestDecode_WrongComponentCount(t *testing.T) {
	w, h := 8, 8
	orig := makeRGB(w, h, 3)
	bitstream, err := Encode(orig, EncodeParams{Width: w, Height: h, Format: colorspace.RGB8, Quality: 0.8})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(bitstream, DecodeParams{OutputFormat: colorspace.RGB8}); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	// Nc sits 16 bytes into the PIH body, which follows SOC (2 bytes), CAP
	// (4 bytes), and the PIH marker and length field (4 bytes).
	bitstream[2+4+4+16] = 1
	if _, err := Decode(bitstream, DecodeParams{OutputFormat: colorspace.RGB8}); err == nil {
		t.Fatal("expected UnsupportedFormat for a bitstream declaring 1 component")
	}
}

func TestEncodeDecode_FormatConversion(t *testing.T) {
	w, h := 8, 8
	orig := makeRGB(w, h, 4)
	bitstream, err := Encode(orig, EncodeParams{Width: w, Height: h, Format: colorspace.RGB8, Quality: 0.9})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res, err := Decode(bitstream, DecodeParams{OutputFormat: colorspace.YUV420p8})
	if err != nil {
		t.Fatalf("Decode to YUV420p8: %v", err)
	}
	wantShape := decodedShape{Width: w, Height: h, Format: colorspace.YUV420p8}
	if diff := cmp.Diff(wantShape, shapeOf(res)); diff != "" {
		t.Fatalf("decoded shape mismatch (-want +got):\n%s", diff)
	}
	wantLen, _ := colorspace.BufferSize(w, h, colorspace.YUV420p8)
	if len(res.Pixels) != wantLen {
		t.Fatalf("len(Pixels) = %d, want %d", len(res.Pixels), wantLen)
	}
}
