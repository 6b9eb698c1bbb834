package dwt

import (
	"math"
	"math/rand"
	"testing"
)

func sizes() []int {
	return []int{2, 4, 8, 16, 32, 64, 128}
}

func makeSignal(kind string, n int, seed int64) []float32 {
	out := make([]float32, n)
	switch kind {
	case "constant":
		for i := range out {
			out[i] = 42
		}
	case "ramp":
		for i := range out {
			out[i] = float32(i)
		}
	case "sine":
		for i := range out {
			out[i] = float32(100 * math.Sin(float64(i)*0.3))
		}
	case "impulse":
		out[n/2] = 1000
	case "random":
		rng := rand.New(rand.NewSource(seed))
		for i := range out {
			out[i] = float32(rng.Intn(511) - 255)
		}
	}
	return out
}

func TestForward1D_PerfectReconstruction(t *testing.T) {
	for _, n := range sizes() {
		for _, kind := range []string{"constant", "ramp", "sine", "impulse", "random"} {
			orig := makeSignal(kind, n, int64(n))
			data := append([]float32(nil), orig...)
			Forward1D(data, n)
			Inverse1D(data, n)
			for i := range orig {
				if math.Abs(float64(data[i]-orig[i])) > 1e-3 {
					t.Fatalf("n=%d kind=%s index=%d: got %v want %v", n, kind, i, data[i], orig[i])
				}
			}
		}
	}
}

func TestForward2D_PerfectReconstruction(t *testing.T) {
	for _, n := range sizes() {
		w, h := n, n
		orig := makeSignal("random", w*h, int64(n)+1)
		data := append([]float32(nil), orig...)
		if err := Forward2D(data, w, h); err != nil {
			t.Fatalf("Forward2D: %v", err)
		}
		if err := Inverse2D(data, w, h); err != nil {
			t.Fatalf("Inverse2D: %v", err)
		}
		for i := range orig {
			if math.Abs(float64(data[i]-orig[i])) > 1e-2 {
				t.Fatalf("size=%d index=%d: got %v want %v", n, i, data[i], orig[i])
			}
		}
	}
}

func TestForward2D_InvalidBufferSize(t *testing.T) {
	if err := Forward2D(make([]float32, 10), 4, 4); err == nil {
		t.Fatal("expected InvalidBufferSize error")
	}
	if err := Inverse2D(make([]float32, 10), 4, 4); err == nil {
		t.Fatal("expected InvalidBufferSize error")
	}
}

func TestForward1D_Linearity(t *testing.T) {
	n := 16
	x := makeSignal("ramp", n, 1)
	y := makeSignal("sine", n, 2)
	const a, b float32 = 2.0, -3.0

	combined := make([]float32, n)
	for i := range combined {
		combined[i] = a*x[i] + b*y[i]
	}
	Forward1D(combined, n)

	fx := append([]float32(nil), x...)
	fy := append([]float32(nil), y...)
	Forward1D(fx, n)
	Forward1D(fy, n)

	for i := 0; i < n; i++ {
		want := a*fx[i] + b*fy[i]
		if math.Abs(float64(combined[i]-want)) > 1e-2 {
			t.Fatalf("index %d: got %v want %v", i, combined[i], want)
		}
	}
}

func TestSIMD2D_MatchesScalar(t *testing.T) {
	for _, n := range []int{4, 8, 16, 33, 64} {
		w, h := n, n
		orig := makeSignal("random", w*h, int64(n)+7)

		scalar := append([]float32(nil), orig...)
		if err := Forward2D(scalar, w, h); err != nil {
			t.Fatalf("Forward2D: %v", err)
		}

		simd := append([]float32(nil), orig...)
		if err := ForwardSIMD2D(simd, w, h); err != nil {
			t.Fatalf("ForwardSIMD2D: %v", err)
		}

		for i := range scalar {
			if math.Abs(float64(scalar[i]-simd[i])) > 1e-4 {
				t.Fatalf("size=%d index=%d: scalar %v simd %v", n, i, scalar[i], simd[i])
			}
		}

		if err := InverseSIMD2D(simd, w, h); err != nil {
			t.Fatalf("InverseSIMD2D: %v", err)
		}
		for i := range orig {
			if math.Abs(float64(simd[i]-orig[i])) > 1e-2 {
				t.Fatalf("size=%d index=%d roundtrip: got %v want %v", n, i, simd[i], orig[i])
			}
		}
	}
}

func TestSIMD2D_InvalidBufferSize(t *testing.T) {
	if err := ForwardSIMD2D(make([]float32, 10), 4, 4); err == nil {
		t.Fatal("expected InvalidBufferSize error")
	}
	if err := InverseSIMD2D(make([]float32, 10), 4, 4); err == nil {
		t.Fatal("expected InvalidBufferSize error")
	}
}
