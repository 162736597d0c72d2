// Command audiometer decodes audio files and runs every meter over them
// block by block, printing a loudness, dynamics and spectral report.
//
// Usage:
//
//	audiometer [flags] file...
//
// Supported inputs are .wav, .mp3 and .ogg files with one or two channels.
//
// Examples:
//
//	audiometer mix.wav
//	audiometer -oversample 4 -bands 16 master.wav
//	audiometer -resample 48000 -ir room.wav dry.mp3
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-meter/internal/decode"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("audiometer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := defaultOptions()
	fs.IntVar(&opts.block, "block", opts.block, "frames per processing block")
	fs.StringVar(&opts.window, "window", opts.window, "spectrum window: hann, hamming, blackman or none")
	fs.IntVar(&opts.oversample, "oversample", opts.oversample, "true-peak oversampling factor (1, 2 or 4)")
	fs.Float64Var(&opts.attackMs, "attack", opts.attackMs, "dynamics attack time in ms")
	fs.Float64Var(&opts.releaseMs, "release", opts.releaseMs, "dynamics release time in ms")
	fs.IntVar(&opts.bands, "bands", opts.bands, "number of log-spaced spectral bands")
	fs.IntVar(&opts.resampleTo, "resample", opts.resampleTo, "resample to this rate before metering (0 keeps the file rate)")
	fs.StringVar(&opts.irPath, "ir", "", "impulse response file to convolve with before metering")
	verbose := fs.Bool("v", false, "log progress at debug level")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: audiometer [flags] file...\n\n")
		fmt.Fprintf(stderr, "Prints loudness, dynamics and spectral statistics of audio files.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}
	if err := opts.validate(); err != nil {
		log.WithError(err).Error("invalid flags")
		return 2
	}

	if opts.irPath != "" {
		ir, err := loadImpulseResponse(opts.irPath)
		if err != nil {
			log.WithError(err).WithField("ir", opts.irPath).Error("cannot load impulse response")
			return 1
		}
		opts.ir = ir
		log.WithFields(logrus.Fields{"ir": opts.irPath, "taps": len(ir)}).Debug("impulse response loaded")
	}

	status := 0
	for _, path := range fs.Args() {
		entry := log.WithField("file", path)
		rep, err := analyzeFile(path, opts, entry)
		if err != nil {
			entry.WithError(err).Error("analysis failed")
			status = 1
			continue
		}
		if err := rep.write(stdout); err != nil {
			entry.WithError(err).Error("cannot write report")
			return 1
		}
	}
	return status
}

func analyzeFile(path string, opts options, log *logrus.Entry) (*report, error) {
	src, err := decode.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	rep, err := analyze(src, opts, log)
	if err != nil {
		return nil, err
	}
	rep.Path = path
	return rep, nil
}

// loadImpulseResponse decodes path and keeps its first channel.
func loadImpulseResponse(path string) ([]float64, error) {
	src, err := decode.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	all, err := decode.ReadAll(src)
	if err != nil {
		return nil, err
	}
	ch := src.Channels()
	if ch < 1 {
		return nil, decode.ErrInvalidFile
	}
	ir := make([]float64, len(all)/ch)
	for i := range ir {
		ir[i] = all[i*ch]
	}
	return ir, nil
}
