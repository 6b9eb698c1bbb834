package quant

import "testing"

func TestBaseQP(t *testing.T) {
	tests := []struct {
		q    float64
		want uint8
	}{
		{1.0, 1},
		{0.90, 1},
		{0.89, 2},
		{0.80, 2},
		{0.75, 3},
		{0.70, 3},
		{0.60, 4},
		{0.55, 6},
		{0.50, 6},
		{0.40, 8},
		{0.30, 12},
		{0.20, 16},
		{0.10, 24},
		{0.05, 32},
		{0.001, 32},
	}
	for _, tt := range tests {
		if got := BaseQP(tt.q); got != tt.want {
			t.Fatalf("BaseQP(%v) = %d, want %d", tt.q, got, tt.want)
		}
	}
}

func TestBaseQP_OutOfRangeClamped(t *testing.T) {
	if got := BaseQP(1.5); got != 1 {
		t.Fatalf("BaseQP(1.5) = %d, want 1 (clamped)", got)
	}
	if got := BaseQP(0); got != 32 {
		t.Fatalf("BaseQP(0) = %d, want 32 (clamped)", got)
	}
	if got := BaseQP(-1); got != 32 {
		t.Fatalf("BaseQP(-1) = %d, want 32 (clamped)", got)
	}
}

func TestVector_Replicated(t *testing.T) {
	v := Vector(0.95)
	for i, qp := range v {
		if qp != 1 {
			t.Fatalf("Vector[%d] = %d, want 1", i, qp)
		}
	}
	if len(v) != Subbands {
		t.Fatalf("len(Vector) = %d, want %d", len(v), Subbands)
	}
}

func TestQuantizeDequantize_RoundTrip(t *testing.T) {
	orig := []float32{0, 1, -1, 100, -100, 255, -255, 17}
	data := append([]float32(nil), orig...)
	if err := Quantize(data, 4); err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	if err := Dequantize(data, 4); err != nil {
		t.Fatalf("Dequantize: %v", err)
	}
	for i := range orig {
		d := data[i] - orig[i]
		if d < -2 || d > 2 {
			t.Fatalf("index %d: got %v want ~%v", i, data[i], orig[i])
		}
	}
}

func TestQuantize_ZeroQP(t *testing.T) {
	data := []float32{1, 2, 3}
	if err := Quantize(data, 0); err == nil {
		t.Fatal("expected InvalidQuantization error")
	}
	if err := Dequantize(data, 0); err == nil {
		t.Fatal("expected InvalidQuantization error")
	}
}

func TestQuantize_ExactDivision(t *testing.T) {
	data := []float32{8, -8, 0, 4}
	if err := Quantize(data, 4); err != nil {
		t.Fatalf("Quantize: %v", err)
	}
	want := []float32{2, -2, 0, 1}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, data[i], want[i])
		}
	}
}
