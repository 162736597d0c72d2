package decode

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// WAV decodes integer PCM WAV files (8, 16, 24 or 32 bit).
type WAV struct{}

// Decode implements Decoder.
func (WAV) Decode(r io.ReadSeeker) (Source, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		if err := d.Err(); err != nil {
			return nil, fmt.Errorf("%w: wav: %w", ErrInvalidFile, err)
		}
		return nil, fmt.Errorf("%w: wav", ErrInvalidFile)
	}
	if d.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("%w: wav encoding %d", ErrUnsupportedFormat, d.WavAudioFormat)
	}

	bits := int(d.BitDepth)
	switch bits {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d-bit wav", ErrUnsupportedFormat, bits)
	}

	channels := int(d.NumChans)
	return &wavSource{
		dec:      d,
		rate:     int(d.SampleRate),
		channels: channels,
		bits:     bits,
		scale:    1 / float64(int64(1)<<(bits-1)),
		buf: &audio.IntBuffer{
			Data:   make([]int, 4096*channels),
			Format: d.Format(),
		},
	}, nil
}

type wavSource struct {
	dec      *wav.Decoder
	rate     int
	channels int
	bits     int
	scale    float64
	buf      *audio.IntBuffer
}

func (s *wavSource) SampleRate() int { return s.rate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) Read(dst []float64) (int, error) {
	want := frameLen(min(len(dst), cap(s.buf.Data)), s.channels)
	if want == 0 {
		return 0, nil
	}
	s.buf.Data = s.buf.Data[:want]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil {
		return 0, fmt.Errorf("decode: wav: %w", err)
	}
	n = frameLen(n, s.channels)
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.buf.Data[:n] {
		if s.bits == 8 {
			v -= 128
		}
		dst[i] = float64(v) * s.scale
	}

	return n, nil
}
