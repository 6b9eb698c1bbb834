package main

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"

	jpegxs "github.com/jpegxs/go-jpegxs"
)

func runEncode(args []string, cfg cliConfig, log *slog.Logger) error {
	fs := newFlagSet("encode")
	in := fs.String("in", "", "path to a raw pixel file")
	out := fs.String("out", "", "path to write the encoded bitstream")
	width := fs.Int("width", 0, "image width in pixels")
	height := fs.Int("height", 0, "image height in pixels")
	format := fs.String("format", "RGB8", "pixel format of the input file")
	quality := fs.Float64("quality", cfg.quality, "quantization quality in (0, 1]")
	profile := fs.String("profile", cfg.profile, "conformance profile: Light, Main, or High")
	level := fs.Int("level", cfg.level, "conformance level")
	fs.Parse(args)

	if *in == "" || *out == "" || *width <= 0 || *height <= 0 {
		return errors.New("encode: -in, -out, -width, and -height are required")
	}

	pixelFormat, err := parseFormat(*format)
	if err != nil {
		return err
	}
	p, err := parseProfile(*profile)
	if err != nil {
		return err
	}

	pixels, err := os.ReadFile(*in)
	if err != nil {
		return errors.Wrapf(err, "encode: reading %s", *in)
	}

	bs, err := jpegxs.Encode(jpegxs.ImageView{
		Pixels: pixels,
		Width:  *width,
		Height: *height,
		Format: pixelFormat,
	}, jpegxs.EncoderConfig{
		Quality: *quality,
		Profile: p,
		Level:   *level,
		Caps:    jpegxs.DefaultAccelCaps(),
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, bs.Bytes, 0o644); err != nil {
		return errors.Wrapf(err, "encode: writing %s", *out)
	}

	log.Info("encoded", "in", *in, "out", *out, "bytes", len(bs.Bytes),
		"width", *width, "height", *height, "quality", *quality)
	return nil
}
