package decode

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMP3SourceConvertsPCM16(t *testing.T) {
	pcm := []byte{
		0x00, 0x80, // -32768
		0xff, 0x7f, // 32767
		0x00, 0x40, // 16384
		0x00, 0x00, // 0
		0x01, // trailing odd byte
	}
	src := newMP3Source(bytes.NewReader(pcm), 44100)
	assert.Equal(t, 2, src.Channels())
	assert.Equal(t, 44100, src.SampleRate())

	got, err := ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 32767.0 / 32768, 0.5, 0}, got)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken frame") }

func TestMP3SourcePropagatesErrors(t *testing.T) {
	src := newMP3Source(failingReader{}, 44100)
	_, err := src.Read(make([]float64, 8))
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

// mockVorbisReader hands out interleaved values in fixed-size pieces.
type mockVorbisReader struct {
	values []float32
	chunk  int
	err    error
}

func (m *mockVorbisReader) Read(p []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if len(m.values) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), m.chunk)], m.values)
	m.values = m.values[n:]
	return n, nil
}

func TestVorbisSource(t *testing.T) {
	values := []float32{0.5, -0.5, 0.25, -0.25, 1, -1}
	src := &vorbisSource{dec: &mockVorbisReader{values: values, chunk: 4}, rate: 48000, channels: 2}

	got, err := ReadAll(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -0.5, 0.25, -0.25, 1, -1}, got)
}

func TestVorbisSourceError(t *testing.T) {
	src := &vorbisSource{dec: &mockVorbisReader{err: io.ErrUnexpectedEOF}, rate: 48000, channels: 1}
	_, err := src.Read(make([]float64, 4))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
