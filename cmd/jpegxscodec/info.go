package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	jpegxs "github.com/jpegxs/go-jpegxs"
)

func runInfo(args []string, log *slog.Logger) error {
	fs := newFlagSet("info")
	in := fs.String("in", "", "path to an encoded bitstream file")
	fs.Parse(args)

	if *in == "" {
		return errors.New("info: -in is required")
	}

	bytes, err := os.ReadFile(*in)
	if err != nil {
		return errors.Wrapf(err, "info: reading %s", *in)
	}

	insp, err := jpegxs.Inspect(jpegxs.Bitstream{Bytes: bytes, BitLength: len(bytes) * 8})
	if err != nil {
		return err
	}

	fmt.Printf("dimensions: %dx%d\n", insp.Width, insp.Height)
	fmt.Printf("components: %d\n", insp.NumComponents)
	fmt.Printf("QP: %v\n", insp.QP)
	fmt.Println("markers:")
	for _, m := range insp.Markers {
		fmt.Printf("  %-4s @ offset %d\n", m.Tag, m.Offset)
	}

	log.Info("inspected", "in", *in, "markers", len(insp.Markers))
	return nil
}
