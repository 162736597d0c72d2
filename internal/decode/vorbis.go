package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// Vorbis decodes Ogg Vorbis streams.
type Vorbis struct{}

// Decode implements Decoder.
func (Vorbis) Decode(r io.ReadSeeker) (Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: ogg: %w", ErrInvalidFile, err)
	}

	return &vorbisSource{dec: dec, rate: dec.SampleRate(), channels: dec.Channels()}, nil
}

// float32Reader is the part of oggvorbis.Reader the source needs. Read
// returns interleaved values, a multiple of the channel count.
type float32Reader interface {
	Read([]float32) (int, error)
}

type vorbisSource struct {
	dec      float32Reader
	rate     int
	channels int
	buf      []float32
}

func (s *vorbisSource) SampleRate() int { return s.rate }
func (s *vorbisSource) Channels() int   { return s.channels }
func (s *vorbisSource) Close() error    { return nil }

func (s *vorbisSource) Read(dst []float64) (int, error) {
	want := frameLen(len(dst), s.channels)
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	buf := s.buf[:want]

	n, err := s.dec.Read(buf)
	n = frameLen(n, s.channels)
	for i, v := range buf[:n] {
		dst[i] = float64(v)
	}
	if n > 0 || err == nil {
		return n, nil
	}
	if errors.Is(err, io.EOF) {
		return 0, io.EOF
	}
	return 0, fmt.Errorf("decode: ogg: %w", err)
}
