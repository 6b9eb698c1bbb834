// Command jpegxscodec is a small CLI wrapping the jpegxs encode/decode/info
// operations over raw pixel files, in the style of ausocean-av's detached
// command-line collaborators (the teacher itself has no cmd/ directory): a
// thin flag-parsing main that hands off to one function per subcommand and
// exits 0/1 on success/failure.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"

	jpegxs "github.com/jpegxs/go-jpegxs"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := loadConfig()
	log := newLogger(cfg)

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:], cfg, log)
	case "decode":
		err = runDecode(os.Args[2:], log)
	case "info":
		err = runInfo(os.Args[2:], log)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "jpegxscodec: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Error("command failed", "subcommand", os.Args[1], "error", err.Error())
		fmt.Fprintf(os.Stderr, "jpegxscodec: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: jpegxscodec <encode|decode|info> [flags]")
	fmt.Fprintln(os.Stderr, "  encode -in raw -out bitstream -width W -height H -format FMT [-quality Q -profile P -level L]")
	fmt.Fprintln(os.Stderr, "  decode -in bitstream -out raw -format FMT")
	fmt.Fprintln(os.Stderr, "  info   -in bitstream")
}

// newLogger builds a structured logger writing JSON to stderr and, when a
// log path is configured, also to a rotating log file, following ausocean-av's lumberjack.Logger construction in cmd/rv (the
// teacher itself has no cmd/ collaborator of its own).
func newLogger(cfg cliConfig) *slog.Logger {
	var w io.Writer = os.Stderr
	if cfg.logPath != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.logPath,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}

func parseFormat(s string) (jpegxs.Format, error) {
	f, err := jpegxs.ParseFormat(s)
	if err != nil {
		return 0, errors.Wrapf(err, "unrecognized pixel format %q", s)
	}
	return f, nil
}

func parseProfile(s string) (jpegxs.Profile, error) {
	switch s {
	case "Light", "light":
		return jpegxs.Light, nil
	case "Main", "main":
		return jpegxs.Main, nil
	case "High", "high":
		return jpegxs.High, nil
	default:
		return 0, errors.Errorf("unrecognized profile %q", s)
	}
}

// newFlagSet constructs a flag.FlagSet that exits the process on error,
// matching the top-level flag.Parse() behavior ausocean-av's commands use.
func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}
