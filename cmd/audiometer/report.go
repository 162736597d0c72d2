package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

type report struct {
	Path        string
	SampleRate  int
	Channels    int
	InputFrames int
	Frames      int

	Momentary   float64
	ShortTerm   float64
	Integrated  float64
	Range       float64
	TruePeak    float64
	MaxTruePeak float64

	RMSDB  []float64
	PeakDB []float64
	Crest  []float64

	Spectra  int
	Dropped  uint64
	Centroid float64
	Flux     float64
	Flatness float64
	PeakHz   float64
	Rolloff  float64
	Bands    []uint8
}

func (r *report) fill(c *chain, opts options) {
	r.Momentary = c.loud.Momentary()
	r.ShortTerm = c.loud.ShortTerm()
	r.Integrated = c.loud.Integrated()
	r.Range = c.loud.LoudnessRange()
	r.TruePeak = c.loud.TruePeak()
	r.MaxTruePeak = c.loud.MaxTruePeak()

	for ch := 0; ch < r.Channels; ch++ {
		r.RMSDB = append(r.RMSDB, c.dyn.RMSDB(ch))
		r.PeakDB = append(r.PeakDB, c.dyn.PeakDB(ch))
		r.Crest = append(r.Crest, c.dyn.Crest(ch))
	}

	r.Spectra = c.spectra
	r.Dropped = c.analyzer.Dropped()
	r.Centroid = c.features.Centroid()
	r.Flux = c.features.Flux()
	r.Flatness = c.features.Flatness()
	r.PeakHz = c.features.PeakHz()
	r.Rolloff = c.features.Rolloff(rolloffFraction)
	if opts.bands > 0 {
		r.Bands = make([]uint8, opts.bands)
		c.features.BandEnergies(r.Bands)
	}
}

func (r *report) write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n", r.Path)
	fmt.Fprintf(tw, "  Format\t%d Hz, %d ch, %d frames\n", r.SampleRate, r.Channels, r.InputFrames)
	if r.Frames != r.InputFrames {
		fmt.Fprintf(tw, "  Metered frames\t%d\n", r.Frames)
	}
	fmt.Fprintf(tw, "  Integrated\t%.1f LUFS\n", r.Integrated)
	fmt.Fprintf(tw, "  Momentary / short-term\t%.1f / %.1f LUFS\n", r.Momentary, r.ShortTerm)
	fmt.Fprintf(tw, "  Loudness range\t%.1f LU\n", r.Range)
	fmt.Fprintf(tw, "  True peak (max)\t%.1f dBFS\n", r.MaxTruePeak)
	for ch := range r.RMSDB {
		fmt.Fprintf(tw, "  %s\trms %.1f dBFS, peak %.1f dBFS, crest %.1f dB\n",
			channelName(ch, r.Channels), r.RMSDB[ch], r.PeakDB[ch], r.Crest[ch])
	}
	fmt.Fprintf(tw, "  Spectra\t%d (%d dropped)\n", r.Spectra, r.Dropped)
	fmt.Fprintf(tw, "  Centroid / peak\t%.0f / %.0f Hz\n", r.Centroid, r.PeakHz)
	fmt.Fprintf(tw, "  Rolloff %.0f%%\t%.0f Hz\n", rolloffFraction*100, r.Rolloff)
	fmt.Fprintf(tw, "  Flatness / flux\t%.3f / %.3f\n", r.Flatness, r.Flux)
	if len(r.Bands) > 0 {
		fmt.Fprintf(tw, "  Bands\t%s\n", formatBands(r.Bands))
	}

	return tw.Flush()
}

func channelName(ch, channels int) string {
	if channels == 1 {
		return "Mono"
	}
	if ch == 0 {
		return "Left"
	}
	return "Right"
}

func formatBands(bands []uint8) string {
	parts := make([]string, len(bands))
	for i, b := range bands {
		parts[i] = fmt.Sprint(b)
	}
	return strings.Join(parts, " ")
}
