// Package conv provides time-domain convolution for short impulse responses.
//
// Direct computes a one-shot linear convolution. Partitioned applies a fixed
// impulse response to an interleaved stream block by block, carrying the
// convolution tail of each chunk into the next so that any split of the
// input yields the same output as a single Direct call:
//
//	p, err := conv.NewPartitioned(ir, 256, 2)
//	out, err := p.Process(block)
//
// Output has no added latency. The cost is O(len(ir)) per sample, so long
// impulse responses belong in a frequency-domain convolver.
package conv
