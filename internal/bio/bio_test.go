package bio

import (
	"math/rand"
	"testing"

	"github.com/frankban/quicktest"
)

func TestWriterReader_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		vals []uint32
		bits []int
	}{
		{"single bit", []uint32{1}, []int{1}},
		{"byte aligned", []uint32{0xAB, 0xCD}, []int{8, 8}},
		{"mixed widths", []uint32{1, 0, 7, 0xFFFF}, []int{1, 1, 3, 16}},
		{"max width", []uint32{0xFFFFFFFF}, []int{32}},
		{"odd widths", []uint32{5, 5, 5}, []int{3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qt := quicktest.New(t)
			w := NewWriter()
			for i, v := range tt.vals {
				qt.Assert(w.WriteBits(v, tt.bits[i]), quicktest.IsNil)
			}
			buf := w.Bytes()

			r := NewReader(buf)
			for i, v := range tt.vals {
				got, err := r.ReadBits(tt.bits[i])
				qt.Assert(err, quicktest.IsNil)
				mask := uint32(1)<<uint(tt.bits[i]) - 1
				if tt.bits[i] == 32 {
					mask = 0xFFFFFFFF
				}
				qt.Assert(got, quicktest.Equals, v&mask)
			}
		})
	}
}

func TestWriterReader_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	w := NewWriter()
	var vals []uint32
	var widths []int
	for i := 0; i < 2000; i++ {
		n := 1 + rng.Intn(32)
		v := rng.Uint32()
		if n < 32 {
			v &= (1 << uint(n)) - 1
		}
		if err := w.WriteBits(v, n); err != nil {
			t.Fatalf("WriteBits(%d, %d): %v", v, n, err)
		}
		vals = append(vals, v)
		widths = append(widths, n)
	}

	r := NewReader(w.Bytes())
	for i, v := range vals {
		got, err := r.ReadBits(widths[i])
		if err != nil {
			t.Fatalf("ReadBits[%d]: %v", i, err)
		}
		if got != v {
			t.Fatalf("ReadBits[%d] = %#x, want %#x (width %d)", i, got, v, widths[i])
		}
	}
}

func TestReader_TruncatedStream(t *testing.T) {
	r := NewReader([]byte{0xFF})
	if _, err := r.ReadBits(8); err != nil {
		t.Fatalf("first read: %v", err)
	}
	if _, err := r.ReadBits(1); err == nil {
		t.Fatal("expected TruncatedStream past end of buffer")
	}
}

func TestWriter_BitLength(t *testing.T) {
	w := NewWriter()
	_ = w.WriteBits(1, 1)
	if w.BitLength() != 1 {
		t.Fatalf("BitLength() = %d, want 1", w.BitLength())
	}
	_ = w.WriteBits(0x7F, 7)
	if w.BitLength() != 8 {
		t.Fatalf("BitLength() = %d, want 8", w.BitLength())
	}
}

func TestReader_Align(t *testing.T) {
	w := NewWriter()
	_ = w.WriteBits(1, 3)
	_ = w.WriteBits(0xAB, 8)
	r := NewReader(w.Bytes())
	_, _ = r.ReadBits(3)
	r.Align()
	b, err := r.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %v", err)
	}
	_ = b
}

func TestWriteBits_InvalidWidth(t *testing.T) {
	w := NewWriter()
	if err := w.WriteBits(0, 0); err == nil {
		t.Fatal("expected error for width 0")
	}
	if err := w.WriteBits(0, 33); err == nil {
		t.Fatal("expected error for width 33")
	}
}
