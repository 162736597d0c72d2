package decode

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// mp3Channels is fixed: go-mp3 always emits 16-bit stereo.
const mp3Channels = 2

// MP3 decodes MPEG-1/2 Layer III streams.
type MP3 struct{}

// Decode implements Decoder.
func (MP3) Decode(r io.ReadSeeker) (Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", ErrInvalidFile, err)
	}

	return newMP3Source(dec, dec.SampleRate()), nil
}

// pcm16Reader is the part of gomp3.Decoder the source needs.
type pcm16Reader interface {
	Read([]byte) (int, error)
}

type mp3Source struct {
	dec  pcm16Reader
	rate int
	buf  []byte
}

func newMP3Source(dec pcm16Reader, rate int) *mp3Source {
	return &mp3Source{dec: dec, rate: rate, buf: make([]byte, 8192)}
}

func (s *mp3Source) SampleRate() int { return s.rate }
func (s *mp3Source) Channels() int   { return mp3Channels }
func (s *mp3Source) Close() error    { return nil }

func (s *mp3Source) Read(dst []float64) (int, error) {
	want := frameLen(len(dst), mp3Channels)
	if want == 0 {
		return 0, nil
	}
	if cap(s.buf) < 2*want {
		s.buf = make([]byte, 2*want)
	}
	buf := s.buf[:2*want]

	m, err := io.ReadFull(s.dec, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, fmt.Errorf("decode: mp3: %w", err)
	}

	n := frameLen(m/2, mp3Channels)
	if n == 0 {
		return 0, io.EOF
	}
	for i := 0; i < n; i++ {
		v := int16(uint16(buf[2*i]) | uint16(buf[2*i+1])<<8)
		dst[i] = float64(v) / 32768
	}

	return n, nil
}
