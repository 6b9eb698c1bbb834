package codestream

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmitParse_RoundTrip(t *testing.T) {
	qp := []uint8{4, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6}
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	buf, err := Emit(640, 480, 3, qp, payload)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	hdr, got, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if hdr.Width != 640 || hdr.Height != 480 {
		t.Fatalf("dimensions = %dx%d, want 640x480", hdr.Width, hdr.Height)
	}
	if hdr.NumComponents != 3 {
		t.Fatalf("NumComponents = %d, want 3", hdr.NumComponents)
	}

	wantComponents := []ComponentInfo{
		{Precision: 8, SX: 1, SY: 1},
		{Precision: 8, SX: 2, SY: 1},
		{Precision: 8, SX: 2, SY: 1},
	}
	if diff := cmp.Diff(wantComponents, hdr.Components); diff != "" {
		t.Fatalf("Components mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(qp, hdr.QP); diff != "" {
		t.Fatalf("QP mismatch (-want +got):\n%s", diff)
	}

	wantTags := []Marker{SOC, CAP, PIH, CDT, WGT, EOC}
	var gotTags []Marker
	for _, m := range hdr.Markers {
		gotTags = append(gotTags, m.Tag)
	}
	if diff := cmp.Diff(wantTags, gotTags); diff != "" {
		t.Fatalf("marker tag sequence mismatch (-want +got):\n%s", diff)
	}
	if hdr.Markers[0].Offset != 0 {
		t.Fatalf("SOC offset = %d, want 0", hdr.Markers[0].Offset)
	}

	if string(got) != string(payload) {
		t.Fatalf("payload = %v, want %v", got, payload)
	}
}

func TestEmit_GainClamped(t *testing.T) {
	qp := []uint8{32, 1}
	buf, err := Emit(4, 4, 1, qp, nil)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	hdr, _, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if hdr.QP[0] != 15 {
		t.Fatalf("QP[0] = %d, want clamped to 15", hdr.QP[0])
	}
	if hdr.QP[1] != 1 {
		t.Fatalf("QP[1] = %d, want 1", hdr.QP[1])
	}
}

func TestParse_WrongFirstMarker(t *testing.T) {
	buf := []byte{0x00, 0x00, 0xFF, 0x11}
	if _, _, err := Parse(buf); err == nil {
		t.Fatal("expected InvalidMarker for missing SOC")
	}
}

func TestParse_TruncatedPIH(t *testing.T) {
	buf := []byte{
		0xFF, 0x10, // SOC
		0xFF, 0x50, 0x00, 0x02, // CAP
		0xFF, 0x12, 0x00, 0x19, // PIH marker + length=25
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // only 10 bytes of a 23-byte payload
	}
	if _, _, err := Parse(buf); err == nil {
		t.Fatal("expected TruncatedStream for short PIH payload")
	}
}

func TestParse_MissingEOC(t *testing.T) {
	qp := []uint8{1}
	buf, err := Emit(2, 2, 1, qp, []byte{0xAA})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	truncated := buf[:len(buf)-2] // drop EOC
	if _, _, err := Parse(truncated); err == nil {
		t.Fatal("expected InvalidMarker when EOC is missing")
	}
}

func TestMarkerString(t *testing.T) {
	if SOC.String() != "SOC" {
		t.Fatalf("SOC.String() = %q", SOC.String())
	}
	if Marker(0x1234).String() == "" {
		t.Fatal("unknown marker should still render")
	}
}
