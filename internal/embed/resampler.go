package embed

import "github.com/cwbudde/algo-meter/dsp/resample"

type resamplerEntry struct {
	rs      *resample.Resampler
	in, out []float64
}

// ResamplerCreate returns a resampler handle, or 0 for non-positive rates
// or a channel count other than 1 or 2.
func (r *Registry) ResamplerCreate(inRate, outRate, channels, quality int32) int32 {
	rs, err := resample.New(int(inRate), int(outRate), int(channels), int(quality))
	if err != nil {
		return 0
	}
	return r.add(&resamplerEntry{rs: rs})
}

// ResamplerProcess converts frames of interleaved input and writes as many
// output frames as fit in output, returning the number written.
func (r *Registry) ResamplerProcess(h int32, input []float32, frames int32, output []float32) int32 {
	e, ok := lookup[*resamplerEntry](r, h)
	if !ok {
		return 0
	}
	channels := e.rs.Channels()
	n := blockLen(input, frames, int32(channels))
	if n == 0 {
		return 0
	}

	e.in = widen(e.in, input[:n])
	capacity := min(len(output)/channels, e.rs.MaxOutputFrames(int(frames)))
	if cap(e.out) < capacity*channels {
		e.out = make([]float64, capacity*channels)
	}
	e.out = e.out[:capacity*channels]

	written := e.rs.Resample(e.in, e.out)
	narrow(output, e.out[:written*channels])
	return int32(written)
}

// ResamplerMaxOutput returns the most frames one call with frames input
// frames can produce.
func (r *Registry) ResamplerMaxOutput(h, frames int32) int32 {
	e, ok := lookup[*resamplerEntry](r, h)
	if !ok {
		return 0
	}
	return int32(e.rs.MaxOutputFrames(int(frames)))
}

// ResamplerChannels returns the interleaved channel count.
func (r *Registry) ResamplerChannels(h int32) int32 {
	e, ok := lookup[*resamplerEntry](r, h)
	if !ok {
		return 0
	}
	return int32(e.rs.Channels())
}

// ResamplerLatency returns the group delay in input frames.
func (r *Registry) ResamplerLatency(h int32) int32 {
	e, ok := lookup[*resamplerEntry](r, h)
	if !ok {
		return 0
	}
	return int32(e.rs.Latency())
}

// ResamplerReset clears the filter history.
func (r *Registry) ResamplerReset(h int32) {
	if e, ok := lookup[*resamplerEntry](r, h); ok {
		e.rs.Reset()
	}
}
