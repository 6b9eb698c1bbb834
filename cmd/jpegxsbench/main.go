// Command jpegxsbench runs the quality-monotonicity scenario from the
// testable-properties suite over a panel of synthetic images, reports how
// often the low-quality bitstream is smaller, and plots PSNR against
// quality, in the spirit of the teacher's
// own benchmark_compare.go command (a detached, throwaway comparison tool
// rather than a package the core depends on).
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	jpegxs "github.com/jpegxs/go-jpegxs"
	"github.com/jpegxs/go-jpegxs/internal/conformance"
)

func main() {
	panelSize := flag.Int("panel", 10, "number of synthetic test images")
	size := flag.Int("size", 128, "width and height of each test image in pixels")
	out := flag.String("out", "quality_panel.png", "path to write the quality/PSNR chart")
	flag.Parse()

	lowSizes, highSizes, qualities, psnrs, err := runPanel(*panelSize, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegxsbench: %v\n", err)
		os.Exit(1)
	}

	frac := conformance.StrictlySmallerFraction(lowSizes, highSizes)
	fmt.Printf("quality monotonicity: low-quality bitstream smaller in %.0f%% of %d images\n",
		frac*100, *panelSize)

	if err := plotQualityPanel(*out, qualities, psnrs); err != nil {
		fmt.Fprintf(os.Stderr, "jpegxsbench: plotting chart: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *out)
}

// runPanel encodes panelSize pseudo-random RGB8 images of size x size at a
// low quality (0.1) and a high quality (0.9), per spec §8 scenario 7, and
// also records, for the chart, the round-trip PSNR over all RGB bytes of the
// seed-0 panel image at each quality step.
func runPanel(panelSize, size int) (lowSizes, highSizes []int, qualities []float64, psnrs []float64, err error) {
	lowSizes = make([]int, panelSize)
	highSizes = make([]int, panelSize)
	qualities = []float64{0.1, 0.3, 0.5, 0.7, 0.9}
	psnrs = make([]float64, len(qualities))

	for i := 0; i < panelSize; i++ {
		img := makePanelImage(size, size, int64(i))

		lowBS, e := encodeAt(img, size, size, 0.1)
		if e != nil {
			return nil, nil, nil, nil, e
		}
		highBS, e := encodeAt(img, size, size, 0.9)
		if e != nil {
			return nil, nil, nil, nil, e
		}
		lowSizes[i] = len(lowBS.Bytes)
		highSizes[i] = len(highBS.Bytes)
	}

	// PSNR curve uses one representative image so the chart reflects a
	// single quality sweep rather than an average across the panel.
	ref := makePanelImage(size, size, 0)
	for i, q := range qualities {
		bs, e := encodeAt(ref, size, size, q)
		if e != nil {
			return nil, nil, nil, nil, e
		}
		decoded, e := jpegxs.Decode(bs, jpegxs.DecoderConfig{Caps: jpegxs.DefaultAccelCaps()}, jpegxs.RGB8)
		if e != nil {
			return nil, nil, nil, nil, e
		}
		psnrs[i] = conformance.PSNR(ref, decoded.Pixels)
	}
	return lowSizes, highSizes, qualities, psnrs, nil
}

func encodeAt(pixels []byte, w, h int, q float64) (jpegxs.Bitstream, error) {
	return jpegxs.Encode(jpegxs.ImageView{Pixels: pixels, Width: w, Height: h, Format: jpegxs.RGB8},
		jpegxs.EncoderConfig{Quality: q, Profile: jpegxs.Main, Level: 2, Caps: jpegxs.DefaultAccelCaps()})
}

// makePanelImage synthesizes a natural-looking RGB8 test pattern: a smooth
// gradient with added per-pixel noise, so repeated quality steps compress
// differently rather than trivially matching a flat field.
func makePanelImage(w, h int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	buf := make([]byte, 3*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := 3 * (y*w + x)
			noise := uint8(rng.Intn(16))
			buf[o+0] = uint8((x*255)/w) + noise
			buf[o+1] = uint8((y*255)/h) + noise
			buf[o+2] = uint8(((x+y)*127)/(w+h)) + noise
		}
	}
	return buf
}

func plotQualityPanel(path string, qualities, psnrs []float64) error {
	p := plot.New()
	p.Title.Text = "JPEG XS quality vs. PSNR"
	p.X.Label.Text = "quality"
	p.Y.Label.Text = "PSNR (dB)"

	pts := make(plotter.XYs, len(qualities))
	for i := range pts {
		pts[i].X = qualities[i]
		pts[i].Y = psnrs[i]
	}

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line, points)
	p.Legend.Add("PSNR", line, points)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
