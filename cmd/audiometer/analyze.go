package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-meter/dsp/conv"
	"github.com/cwbudde/algo-meter/dsp/resample"
	"github.com/cwbudde/algo-meter/dsp/spectrum"
	"github.com/cwbudde/algo-meter/dsp/window"
	"github.com/cwbudde/algo-meter/internal/decode"
	"github.com/cwbudde/algo-meter/measure/dynamics"
	"github.com/cwbudde/algo-meter/measure/loudness"
	"github.com/cwbudde/algo-meter/stats/frequency"
)

var (
	errInvalidOption       = errors.New("audiometer: invalid option")
	errUnsupportedChannels = errors.New("audiometer: only mono and stereo inputs are supported")
)

const (
	rolloffFraction = 0.85
	maxEmptyReads   = 100
)

type options struct {
	block      int
	window     string
	oversample int
	attackMs   float64
	releaseMs  float64
	bands      int
	resampleTo int
	irPath     string

	ir []float64
}

func defaultOptions() options {
	return options{
		block:      1024,
		window:     "hann",
		oversample: 4,
		attackMs:   10,
		releaseMs:  100,
		bands:      8,
		resampleTo: 0,
	}
}

func (o options) validate() error {
	switch {
	case o.block <= 0 || o.block > conv.MaxBlockSize:
		return fmt.Errorf("%w: block %d", errInvalidOption, o.block)
	case !validWindow(o.window):
		return fmt.Errorf("%w: window %q", errInvalidOption, o.window)
	case o.oversample != 1 && o.oversample != 2 && o.oversample != 4:
		return fmt.Errorf("%w: oversample %d", errInvalidOption, o.oversample)
	case o.bands < 0:
		return fmt.Errorf("%w: bands %d", errInvalidOption, o.bands)
	case o.resampleTo < 0:
		return fmt.Errorf("%w: resample %d", errInvalidOption, o.resampleTo)
	}
	return nil
}

func validWindow(name string) bool {
	_, err := window.ParseType(name)
	return err == nil
}

func (o options) windowType() window.Type {
	t, err := window.ParseType(o.window)
	if err != nil {
		return window.TypeHann
	}
	return t
}

// chain runs the optional resampler and convolver ahead of the meters.
type chain struct {
	rs    *resample.Resampler
	conv  *conv.Partitioned
	rsOut []float64
	cvOut []float64

	loud     *loudness.Meter
	dyn      *dynamics.Meter
	analyzer *spectrum.Analyzer
	features *frequency.Extractor
	frame    spectrum.Frame
	spectra  int
}

func newChain(rate, channels int, opts options) (*chain, error) {
	c := &chain{}
	if opts.resampleTo > 0 && opts.resampleTo != rate {
		rs, err := resample.New(rate, opts.resampleTo, channels, 32)
		if err != nil {
			return nil, err
		}
		c.rs = rs
		rate = opts.resampleTo
	}
	if len(opts.ir) > 0 {
		cv, err := conv.NewPartitioned(opts.ir, opts.block, channels)
		if err != nil {
			return nil, err
		}
		c.conv = cv
	}

	fe, err := frequency.NewExtractor(spectrum.FrameSize, float64(rate))
	if err != nil {
		return nil, err
	}
	c.features = fe
	c.loud = loudness.NewMeter(
		loudness.WithSampleRate(float64(rate)),
		loudness.WithChannels(channels),
		loudness.WithTruePeakOversample(opts.oversample),
	)
	c.dyn = dynamics.NewMeter(
		dynamics.WithSampleRate(float64(rate)),
		dynamics.WithChannels(channels),
		dynamics.WithAttack(opts.attackMs),
		dynamics.WithRelease(opts.releaseMs),
	)
	c.analyzer = spectrum.NewAnalyzer(opts.windowType())
	return c, nil
}

func (c *chain) process(block []float64, channels int) (int, error) {
	if c.rs != nil {
		need := c.rs.MaxOutputFrames(len(block)/channels) * channels
		if cap(c.rsOut) < need {
			c.rsOut = make([]float64, need)
		}
		n := c.rs.Resample(block, c.rsOut[:need])
		block = c.rsOut[:n*channels]
	}
	if c.conv != nil && len(block) > 0 {
		if cap(c.cvOut) < len(block) {
			c.cvOut = make([]float64, len(block))
		}
		out := c.cvOut[:len(block)]
		if err := c.conv.ProcessTo(out, block); err != nil {
			return 0, err
		}
		block = out
	}

	c.loud.ProcessBlock(block)
	c.dyn.ProcessBlock(block)
	if c.analyzer.Push(block, channels) && c.analyzer.Consume(&c.frame) {
		c.features.Update(c.frame.Magnitude[:])
		c.spectra++
	}
	return len(block) / channels, nil
}

func (c *chain) close() {
	if c.conv != nil {
		c.conv.Close()
	}
}

// analyze streams src through the chain in blocks of opts.block frames.
func analyze(src decode.Source, opts options, log *logrus.Entry) (*report, error) {
	rate, channels := src.SampleRate(), src.Channels()
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", errUnsupportedChannels, channels)
	}

	c, err := newChain(rate, channels, opts)
	if err != nil {
		return nil, err
	}
	defer c.close()

	log.WithFields(logrus.Fields{
		"rate":     rate,
		"channels": channels,
		"block":    opts.block,
	}).Debug("analyzing")

	rep := &report{SampleRate: rate, Channels: channels}
	buf := make([]float64, opts.block*channels)
	for empty := 0; ; {
		n, err := src.Read(buf)
		if n == 0 && err == nil {
			if empty++; empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		empty = 0
		if n > 0 {
			rep.InputFrames += n / channels
			out, perr := c.process(buf[:n], channels)
			if perr != nil {
				return nil, perr
			}
			rep.Frames += out
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	rep.fill(c, opts)
	log.WithFields(logrus.Fields{
		"frames":  rep.Frames,
		"spectra": rep.Spectra,
		"dropped": rep.Dropped,
	}).Debug("done")
	return rep, nil
}
