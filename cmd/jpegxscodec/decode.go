package main

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"

	jpegxs "github.com/jpegxs/go-jpegxs"
)

func runDecode(args []string, log *slog.Logger) error {
	fs := newFlagSet("decode")
	in := fs.String("in", "", "path to an encoded bitstream file")
	out := fs.String("out", "", "path to write the decoded pixel file")
	format := fs.String("format", "RGB8", "pixel format to decode into")
	strict := fs.Bool("strict", false, "set DecoderConfig.StrictMode (decoding is the same with or without it)")
	fs.Parse(args)

	if *in == "" || *out == "" {
		return errors.New("decode: -in and -out are required")
	}

	outputFormat, err := parseFormat(*format)
	if err != nil {
		return err
	}

	bytes, err := os.ReadFile(*in)
	if err != nil {
		return errors.Wrapf(err, "decode: reading %s", *in)
	}

	img, err := jpegxs.Decode(jpegxs.Bitstream{Bytes: bytes, BitLength: len(bytes) * 8},
		jpegxs.DecoderConfig{StrictMode: *strict, Caps: jpegxs.DefaultAccelCaps()}, outputFormat)
	if err != nil {
		return err
	}

	if err := os.WriteFile(*out, img.Pixels, 0o644); err != nil {
		return errors.Wrapf(err, "decode: writing %s", *out)
	}

	log.Info("decoded", "in", *in, "out", *out, "width", img.Width, "height", img.Height)
	return nil
}
